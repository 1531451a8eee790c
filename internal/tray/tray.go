package tray

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"
	"github.com/petems/mictray/internal/app"
	"github.com/rs/zerolog"
)

// Menu label for the implicit "no explicit selection" entry.
const systemDefaultLabel = "System Default"

type UI struct {
	app     *app.App
	version string
	commit  string
	log     zerolog.Logger
	ctx     context.Context

	// Menu items
	mDevices *systray.MenuItem
}

func New(application *app.App, log zerolog.Logger, version, commit string) *UI {
	return &UI{
		app:     application,
		version: version,
		commit:  commit,
		log:     log,
	}
}

// Run starts the tray loop. It must be called on the main thread and blocks
// until the user quits.
func (u *UI) Run(ctx context.Context) error {
	u.ctx = ctx
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	systray.SetTitle("🎤")
	systray.SetTooltip(tooltipFor(u.app.SelectedDevice()))

	u.mDevices = systray.AddMenuItem("Microphone", "Select audio input device")
	u.buildDeviceMenu()

	systray.AddSeparator()
	mCopy := systray.AddMenuItem("Copy Device Name", "Copy the selected device name")
	mAbout := systray.AddMenuItem("About", "About mictray")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	// Event loop
	go u.handleEvents(mCopy, mAbout, mQuit)

	// Keep the tooltip in step with the selection, wherever it came from
	go u.watchSelection()
}

func (u *UI) handleEvents(mCopy, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-mCopy.ClickedCh:
			u.copyDeviceName()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) buildDeviceMenu() {
	devices := u.app.ListDevices()

	selected := u.app.SelectedDevice()
	deviceItems := make(map[string]*systray.MenuItem, len(devices)+1)
	deviceItems[""] = u.mDevices.AddSubMenuItemCheckbox(
		systemDefaultLabel, "Use the system default input", selected == "")

	for _, dev := range devices {
		item := u.mDevices.AddSubMenuItemCheckbox(deviceLabel(dev.Name, dev.Default), "", dev.ID == selected)
		deviceItems[dev.ID] = item
	}

	// One click loop per item; the map is read-only from here on.
	for id, item := range deviceItems {
		go func(deviceID string, menuItem *systray.MenuItem) {
			for {
				<-menuItem.ClickedCh
				u.app.SelectDevice(deviceID)
				// Checked state is derived from the cell's current value,
				// not from which item was clicked.
				current := u.app.SelectedDevice()
				for devID, itm := range deviceItems {
					if devID == current {
						itm.Check()
					} else {
						itm.Uncheck()
					}
				}
			}
		}(id, item)
	}

	if len(devices) == 0 {
		u.log.Warn().Msg("No audio input devices found")
	}
}

func (u *UI) watchSelection() {
	sub := u.app.SubscribeSelection()
	defer sub.Close()

	for {
		id, err := sub.Next(u.ctx)
		if err != nil {
			return
		}
		systray.SetTooltip(tooltipFor(id))
	}
}

func (u *UI) copyDeviceName() {
	name := u.app.SelectedDevice()
	if name == "" {
		name = systemDefaultLabel
	}
	if err := clipboard.WriteAll(name); err != nil {
		u.log.Error().Err(err).Msg("Failed to copy device name")
		return
	}
	u.log.Info().Str("device", name).Msg("Copied device name to clipboard")
}

func (u *UI) showAbout() {
	// TODO: Show about dialog with native UI
	fmt.Printf("mictray %s (%s)\nAudio input device selector\n", u.version, u.commit)
}

func (u *UI) onExit() {
	// Cleanup
}

// tooltipFor renders the tray tooltip for a device ID.
func tooltipFor(id string) string {
	if id == "" {
		return "Microphone: " + systemDefaultLabel
	}
	return "Microphone: " + id
}

// deviceLabel renders a device menu entry, flagging the host default input.
func deviceLabel(name string, isDefault bool) string {
	if isDefault {
		return name + " (default)"
	}
	return name
}
