package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muurk/gazscan/internal/protocol"
)

// RenderScanSummary renders the post-scan result box: how many
// parameters were recovered from how many devices, and where they went.
func RenderScanSummary(records []protocol.ParameterRecord, duration time.Duration, csvPath string, width int) string {
	devices := make(map[uint16]int)
	for _, rec := range records {
		devices[rec.Device]++
	}

	addrs := make([]uint16, 0, len(devices))
	for addr := range devices {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var lines []string
	lines = append(lines, "")
	lines = append(lines, SuccessTitleStyle.Render("   SCAN COMPLETED"))
	lines = append(lines, "")

	addLine := func(key, value string) {
		keyStyled := SummaryKeyStyle.Render("   " + key + ":")
		valueStyled := SummaryValueStyle.Render(value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}

	addLine("Parameters", fmt.Sprintf("%d", len(records)))
	addLine("Devices", fmt.Sprintf("%d", len(devices)))
	for _, addr := range addrs {
		addLine(fmt.Sprintf("  Device %d", addr), fmt.Sprintf("%d parameters", devices[addr]))
	}
	addLine("Duration", duration.Round(time.Second).String())
	if csvPath != "" {
		addLine("Exported to", csvPath)
	}

	lines = append(lines, "")

	content := strings.Join(lines, "\n")
	return SummaryBoxStyle(width).Render(content)
}

// RenderScanError renders a failed-scan box with troubleshooting tips.
func RenderScanError(message string, width int) string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ErrorMessageStyle.Render(" "+message))
	lines = append(lines, "")
	lines = append(lines, StatusStyle.Render(" Troubleshooting:"))
	lines = append(lines, StatusStyle.Render("   • Check the bridge IP and port"))
	lines = append(lines, StatusStyle.Render("   • Verify the RS-485 wiring and bus termination"))
	lines = append(lines, StatusStyle.Render("   • Try gazscan discover to locate bridges"))
	lines = append(lines, "")

	content := strings.Join(lines, "\n")
	return ErrorBoxStyle(width).Render(content)
}

// PrintRecordLine formats one decoded parameter for the plain,
// line-oriented output mode used when stdout is not a terminal.
func PrintRecordLine(rec protocol.ParameterRecord) string {
	unit := rec.Unit
	if unit == "" {
		unit = "-"
	}
	return fmt.Sprintf("%5d %5d  %-24s %12s %-6s %-12s %s",
		rec.Device, rec.Index, rec.Name, rec.Value, unit, rec.Type, rec.Access())
}
