package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/gazscan/internal/export"
	"github.com/muurk/gazscan/internal/protocol"
	"github.com/muurk/gazscan/internal/scanner"
)

// Messages for scan channel events
type statusMsg scanner.Status
type statusClosedMsg struct{}
type recordMsg protocol.ParameterRecord
type recordsClosedMsg struct{}

// scanKeyMap defines key bindings for the scan screen
type scanKeyMap struct {
	Stop   key.Binding
	Export key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k scanKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Export, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k scanKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stop, k.Export, k.Quit},
	}
}

// ScanModel is the live scan screen: a phase line with spinner, a
// progress bar driven by scanner status updates, and a growing table of
// decoded parameters.
type ScanModel struct {
	scan     *scanner.Scanner
	endpoint string
	csvPath  string

	spinner spinner.Model
	bar     progress.Model
	tbl     table.Model
	help    help.Model
	keys    scanKeyMap

	records    []protocol.ParameterRecord
	message    string
	percent    float64
	hasPercent bool
	exportNote string

	statusDone  bool
	recordsDone bool
	stopped     bool

	width  int
	height int
}

// NewScanModel creates the scan screen for a configured scanner.
// csvPath may be empty, which disables the export key.
func NewScanModel(scan *scanner.Scanner, endpoint, csvPath string) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	columns := []table.Column{
		{Title: "Addr", Width: 5},
		{Title: "Idx", Width: 5},
		{Title: "Name", Width: 22},
		{Title: "Value", Width: 12},
		{Title: "Unit", Width: 6},
		{Title: "Type", Width: 12},
		{Title: "Acc", Width: 3},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(TextColor).
		Background(PrimaryColor)
	tbl.SetStyles(styles)

	keys := scanKeyMap{
		Stop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop scan"),
		),
		Export: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save CSV"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	if csvPath == "" {
		keys.Export.SetEnabled(false)
	}

	return ScanModel{
		scan:     scan,
		endpoint: endpoint,
		csvPath:  csvPath,
		spinner:  s,
		bar:      bar,
		tbl:      tbl,
		help:     help.New(),
		keys:     keys,
		message:  "Connecting...",
	}
}

// Records returns everything decoded so far, in emission order.
func (m ScanModel) Records() []protocol.ParameterRecord {
	return m.records
}

// waitForStatus delivers the next status update as a message.
func waitForStatus(ch <-chan scanner.Status) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return statusClosedMsg{}
		}
		return statusMsg(st)
	}
}

// waitForRecord delivers the next decoded parameter as a message.
func waitForRecord(ch <-chan protocol.ParameterRecord) tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-ch
		if !ok {
			return recordsClosedMsg{}
		}
		return recordMsg(rec)
	}
}

// Init implements tea.Model
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForStatus(m.scan.Status()),
		waitForRecord(m.scan.Records()),
	)
}

// Update implements tea.Model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.scan.Stop()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Stop):
			m.scan.Stop()
			m.stopped = true
			m.message = "Stopping..."
			return m, nil

		case key.Matches(msg, m.keys.Export):
			if m.csvPath != "" {
				if err := export.SaveCSV(m.csvPath, m.records); err != nil {
					m.exportNote = fmt.Sprintf("Export failed: %v", err)
				} else {
					m.exportNote = fmt.Sprintf("Saved %d records to %s", len(m.records), m.csvPath)
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 20
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth < 20 {
			barWidth = 20
		}
		m.bar.Width = barWidth

	case statusMsg:
		m.message = msg.Message
		if msg.HasProgress {
			m.percent = msg.Progress
			m.hasPercent = true
		}
		return m, waitForStatus(m.scan.Status())

	case statusClosedMsg:
		m.statusDone = true
		if m.recordsDone {
			return m, tea.Quit
		}
		return m, nil

	case recordMsg:
		rec := protocol.ParameterRecord(msg)
		m.records = append(m.records, rec)
		rows := append(m.tbl.Rows(), table.Row{
			strconv.FormatUint(uint64(rec.Device), 10),
			strconv.FormatUint(uint64(rec.Index), 10),
			rec.Name,
			rec.Value,
			rec.Unit,
			rec.Type,
			rec.Access(),
		})
		m.tbl.SetRows(rows)
		m.tbl.GotoBottom()
		return m, waitForRecord(m.scan.Records())

	case recordsClosedMsg:
		m.recordsDone = true
		if m.statusDone {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("GAZSCAN - GazModem Parameter Scanner"))
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render("Target: " + m.endpoint))
	b.WriteString("\n\n")

	b.WriteString(PhaseStyle.Render(m.spinner.View() + " " + m.message))
	b.WriteString("\n\n")

	if m.hasPercent {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(m.bar.ViewAs(m.percent / 100)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.tbl.View())
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(fmt.Sprintf("%d parameters found", len(m.records))))
	b.WriteString("\n")

	if m.exportNote != "" {
		b.WriteString(StatusStyle.Render(m.exportNote))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// RunScan drives a scan through the interactive TUI and returns the
// decoded records once the scan finishes or the user quits. The
// scanner must not have been started yet.
func RunScan(scan *scanner.Scanner, endpoint, csvPath string) ([]protocol.ParameterRecord, error) {
	model := NewScanModel(scan, endpoint, csvPath)
	scan.Start()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		scan.Stop()
		return nil, fmt.Errorf("scan UI failed: %w", err)
	}

	m, ok := final.(ScanModel)
	if !ok {
		return nil, nil
	}
	return m.Records(), nil
}
