package discovery

import (
	"testing"
	"time"
)

func TestBridge_String(t *testing.T) {
	bridge := &Bridge{
		Name:     "ser2net-boilerroom",
		Hostname: "boilerpi.local",
		IP:       "192.168.1.38",
		Port:     8899,
	}

	expected := "Bridge ser2net-boilerroom (boilerpi.local) at 192.168.1.38:8899"
	if bridge.String() != expected {
		t.Errorf("Bridge.String() = %v, want %v", bridge.String(), expected)
	}
}

func TestBridge_Endpoint(t *testing.T) {
	tests := []struct {
		name     string
		bridge   *Bridge
		expected string
	}{
		{
			name: "standard bridge port",
			bridge: &Bridge{
				IP:   "192.168.1.38",
				Port: 8899,
			},
			expected: "192.168.1.38:8899",
		},
		{
			name: "telnet port",
			bridge: &Bridge{
				IP:   "10.0.0.5",
				Port: 23,
			},
			expected: "10.0.0.5:23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bridge.Endpoint(); got != tt.expected {
				t.Errorf("Bridge.Endpoint() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBridge_GetMetadata(t *testing.T) {
	bridge := &Bridge{
		Metadata: map[string]string{
			"devicetype": "RFC2217",
			"device":     "/dev/ttyUSB0",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "devicetype",
			expected: "RFC2217",
		},
		{
			name:     "another existing key",
			key:      "device",
			expected: "/dev/ttyUSB0",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bridge.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Bridge.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestBridge_GetMetadata_NilMap(t *testing.T) {
	bridge := &Bridge{
		Metadata: nil,
	}

	if got := bridge.GetMetadata("anything"); got != "" {
		t.Errorf("Bridge.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestBridge_DiscoveredAt(t *testing.T) {
	now := time.Now()
	bridge := &Bridge{
		Name:         "ser2net-boilerroom",
		DiscoveredAt: now,
	}

	if bridge.DiscoveredAt != now {
		t.Errorf("Bridge.DiscoveredAt = %v, want %v", bridge.DiscoveredAt, now)
	}
}
