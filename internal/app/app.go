package app

import (
	"context"
	"sync"

	"github.com/petems/mictray/internal/audio"
	"github.com/petems/mictray/internal/config"
	"github.com/petems/mictray/internal/state"
	"github.com/rs/zerolog"
)

type Config struct {
	Catalog audio.Catalog
	Config  *config.Config
	Logger  zerolog.Logger
}

// App owns the selected-device cell and ties it to the device catalog and
// the settings file. The tray calls SelectDevice from its click callbacks;
// asynchronous consumers follow the selection through SubscribeSelection.
type App struct {
	catalog  audio.Catalog
	cfg      *config.Config
	log      zerolog.Logger
	selected *state.Cell[string]

	mu        sync.Mutex
	watchStop context.CancelFunc
	watchDone chan struct{}
}

func New(cfg Config) *App {
	return &App{
		catalog:  cfg.Catalog,
		cfg:      cfg.Config,
		log:      cfg.Logger,
		selected: state.New(cfg.Config.Audio.DeviceID),
	}
}

// Start launches the selection watcher, the background consumer that
// persists and logs every selection change. Call Shutdown to stop it.
func (a *App) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.watchDone != nil {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.watchStop = cancel
	a.watchDone = make(chan struct{})
	go a.watchSelection(watchCtx, a.watchDone)
}

func (a *App) watchSelection(ctx context.Context, done chan struct{}) {
	defer close(done)

	sub := a.selected.Subscribe()
	defer sub.Close()

	// The first value is the snapshot the cell was constructed with, which
	// already matches the config. Only changes after startup are persisted.
	if _, err := sub.Next(ctx); err != nil {
		return
	}

	for {
		id, err := sub.Next(ctx)
		if err != nil {
			return
		}

		a.mu.Lock()
		a.cfg.Audio.DeviceID = id
		err = a.cfg.Save()
		a.mu.Unlock()

		if err != nil {
			a.log.Error().Err(err).Str("device", id).Msg("Failed to persist device selection")
			continue
		}
		a.log.Info().Str("device", id).Msg("Device selection persisted")
	}
}

// SelectDevice broadcasts a new device selection. id is the device ID, or
// "" for the system default input.
func (a *App) SelectDevice(id string) {
	a.selected.Set(id)
	a.log.Info().Str("device", id).Msg("Changed audio device")
}

// SelectedDevice returns the currently selected device ID without touching
// any subscription.
func (a *App) SelectedDevice() string {
	return a.selected.Value()
}

// SubscribeSelection registers a new follower of device selections. The
// caller must Close the subscription when done.
func (a *App) SubscribeSelection() *state.Subscription[string] {
	return a.selected.Subscribe()
}

func (a *App) ListDevices() []audio.Device {
	return a.catalog.ListInputDevices()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	stop, done := a.watchStop, a.watchDone
	a.mu.Unlock()

	if stop != nil {
		stop()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return a.catalog.Close()
}
