package tray

import "testing"

func TestTooltipFor(t *testing.T) {
	tests := []struct {
		name     string
		deviceID string
		expected string
	}{
		{
			name:     "no explicit selection",
			deviceID: "",
			expected: "Microphone: System Default",
		},
		{
			name:     "named device",
			deviceID: "USB Microphone",
			expected: "Microphone: USB Microphone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tooltipFor(tt.deviceID); got != tt.expected {
				t.Errorf("tooltipFor(%q) = %q, want %q", tt.deviceID, got, tt.expected)
			}
		})
	}
}

func TestDeviceLabel(t *testing.T) {
	if got := deviceLabel("Built-in Microphone", true); got != "Built-in Microphone (default)" {
		t.Errorf("unexpected default label %q", got)
	}
	if got := deviceLabel("USB Microphone", false); got != "USB Microphone" {
		t.Errorf("unexpected label %q", got)
	}
}
