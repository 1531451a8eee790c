package audio

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

type portAudioCatalog struct {
	log zerolog.Logger
}

// New creates a PortAudio-backed device catalog.
func New(log zerolog.Logger) (Catalog, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &portAudioCatalog{log: log}, nil
}

func (p *portAudioCatalog) ListInputDevices() []Device {
	devices, err := portaudio.Devices()
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to enumerate audio devices")
		return nil
	}

	defaultDevice, err := portaudio.DefaultInputDevice()
	if err != nil {
		p.log.Warn().Err(err).Msg("No default input device")
	}

	result := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d.MaxInputChannels <= 0 {
			continue
		}
		if isMonitorSource(d.Name) {
			continue
		}
		result = append(result, Device{
			ID:         d.Name,
			Name:       d.Name,
			Channels:   d.MaxInputChannels,
			SampleRate: int(d.DefaultSampleRate),
			State:      StateActive,
			Default:    defaultDevice != nil && d == defaultDevice,
		})
	}

	return result
}

func (p *portAudioCatalog) Close() error {
	return portaudio.Terminate()
}

// isMonitorSource reports whether a device name identifies a loopback
// monitor of an output, which should not be offered as a microphone.
func isMonitorSource(name string) bool {
	return strings.HasSuffix(name, ".monitor")
}
