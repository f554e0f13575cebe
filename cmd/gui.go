package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"tabata/internal/audio"
	"tabata/internal/core/session"
	"tabata/internal/core/timekeeper"
	"tabata/internal/i18n"
	"tabata/internal/platform"
	"tabata/internal/storage"
	"tabata/internal/ui/animation"
	"tabata/internal/ui/display"
	"tabata/internal/ui/preferences"
	"tabata/internal/ui/tray"
	"tabata/resources"
)

func runGUI(cmd *cobra.Command, _ []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, store := loadSettings(cmd)

	keeper, err := timekeeper.New(settings.WorkoutConfig(), timekeeper.Config{})
	if err != nil {
		return err
	}
	defer keeper.Close()

	player := audio.NewPlayer(settings.Sound)
	defer player.Close()

	awake := newAwakeGuard(platform.NewWakeLock(appName), settings.KeepAwake)
	defer awake.Release()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())

	var prefsWindow *preferences.Window
	timerWindow := display.New(fyneApp, appName, display.Callbacks{
		OnToggle:   keeper.Toggle,
		OnReset:    keeper.Reset,
		OnSettings: func() { prefsWindow.Show() },
	})
	timerWindow.SetWorkout(keeper.Config())
	timerWindow.Render(keeper.Snapshot())

	engine := animation.New(animation.DefaultConfig(), func(frame animation.Frame) {
		fyne.Do(func() {
			timerWindow.ApplyFrame(frame)
		})
	})
	defer engine.Stop()

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) bool {
		return applySettings(updated, keeper, store, timerWindow, prefsWindow.Window(), func() {
			player.SetEnabled(updated.Sound)
			awake.SetEnabled(updated.KeepAwake)
		})
	})

	trayManager := installTray(fyneApp, timerWindow, prefsWindow, keeper)
	if trayManager != nil {
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	} else {
		timerWindow.Window().SetMaster()
	}

	guard.SetOnActivate(func() {
		fyne.Do(timerWindow.Show)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-stopped:
		}
	}()

	events := keeper.Subscribe(16)
	trayRunning := false
	go func() {
		for event := range events {
			player.Handle(event)
			awake.Handle(event)

			switch event.Type {
			case session.EventRoundAdvanced:
				engine.PulseRound(ctx)
			case session.EventCompleted:
				engine.Celebrate(ctx)
			case session.EventReset, session.EventStarted:
				engine.Stop()
			}

			snapshot := event.Snapshot
			fyne.Do(func() {
				timerWindow.Render(snapshot)
				if trayManager != nil {
					trayManager.Update(snapshot)
					if snapshot.Running != trayRunning {
						trayRunning = snapshot.Running
						updateTrayIcon(fyneApp, trayRunning)
					}
				}
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	close(stopped)
	return nil
}

// applySettings pushes new settings into the running app. It refuses
// while a workout is running.
func applySettings(updated preferences.Settings, keeper *timekeeper.TimeKeeper, store *storage.Store, timerWindow *display.Window, parent fyne.Window, onApplied func()) bool {
	if err := keeper.Configure(updated.WorkoutConfig()); err != nil {
		if errors.Is(err, session.ErrSessionRunning) {
			dialog.ShowInformation(i18n.T("Settings"), i18n.T("Please pause or reset the timer before changing settings."), parent)
			return false
		}
		dialog.ShowError(err, parent)
		return false
	}

	keeper.Reset()
	onApplied()
	if store != nil {
		if err := store.Save(updated); err != nil {
			log.Printf("settings: save %s: %v", store.Path(), err)
		}
	}

	timerWindow.SetWorkout(keeper.Config())
	timerWindow.Render(keeper.Snapshot())
	dialog.ShowInformation(i18n.T("Settings"), i18n.T("Settings applied!"), timerWindow.Window())
	return true
}

func installTray(fyneApp fyne.App, timerWindow *display.Window, prefsWindow *preferences.Window, keeper *timekeeper.TimeKeeper) *tray.Manager {
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return nil
	}

	manager := tray.New(desktopApp, appName, tray.Callbacks{
		OnShow:     timerWindow.Show,
		OnToggle:   keeper.Toggle,
		OnReset:    keeper.Reset,
		OnSettings: prefsWindow.Show,
		OnQuit:     fyneApp.Quit,
	})
	manager.Update(keeper.Snapshot())
	desktopApp.SetSystemTrayIcon(resources.PausedIcon())
	return manager
}

func updateTrayIcon(fyneApp fyne.App, running bool) {
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return
	}
	if running {
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
	} else {
		desktopApp.SetSystemTrayIcon(resources.PausedIcon())
	}
}
