package audio

// Catalog enumerates audio input devices. Enumeration never fails loudly:
// when the audio subsystem is unreachable the catalog logs a warning and
// reports no devices.
type Catalog interface {
	ListInputDevices() []Device
	Close() error
}

// Device represents an audio input device. Muted and State reflect what the
// backend exposes; PortAudio reports neither a mute flag nor an idle or
// suspended state, so there Muted is always false and State is StateActive.
type Device struct {
	ID         string
	Name       string
	Channels   int
	SampleRate int
	Muted      bool
	State      string
	Default    bool
}

// StateActive marks a device the backend considers usable for capture.
const StateActive = "active"
