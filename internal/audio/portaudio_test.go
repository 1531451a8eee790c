package audio

import "testing"

func TestIsMonitorSource(t *testing.T) {
	tests := []struct {
		name    string
		device  string
		monitor bool
	}{
		{
			name:    "plain microphone",
			device:  "Built-in Microphone",
			monitor: false,
		},
		{
			name:    "pulse monitor source",
			device:  "alsa_output.pci-0000_00_1f.3.analog-stereo.monitor",
			monitor: true,
		},
		{
			name:    "monitor in the middle of the name",
			device:  "monitor-mic",
			monitor: false,
		},
		{
			name:    "empty name",
			device:  "",
			monitor: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMonitorSource(tt.device); got != tt.monitor {
				t.Errorf("isMonitorSource(%q) = %v, want %v", tt.device, got, tt.monitor)
			}
		})
	}
}
