package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty input is the initial value",
			data: []byte{},
			want: 0x0000,
		},
		{
			name: "standard check sequence",
			data: []byte("123456789"),
			want: 0x31C3,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0x0000,
		},
		{
			name: "single 0xFF byte",
			data: []byte{0xFF},
			want: 0x1EF0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%04X, want 0x%04X", got, tt.want)
			}
		})
	}
}

func TestChecksumDeterministic(t *testing.T) {
	data := []byte{0x68, 0x08, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x01, 0x2A, 0x00}
	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("Checksum() not deterministic: 0x%04X != 0x%04X", got, first)
		}
	}
}

func TestChecksumBitFlipSensitivity(t *testing.T) {
	data := []byte{0x08, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x01, 0x2A, 0x00}
	base := Checksum(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(data))
			copy(flipped, data)
			flipped[i] ^= 1 << bit
			if Checksum(flipped) == base {
				t.Errorf("flip of byte %d bit %d did not change checksum", i, bit)
			}
		}
	}
}
