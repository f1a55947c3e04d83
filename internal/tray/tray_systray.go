//go:build cgo || windows
// +build cgo windows

package tray

import (
	"context"
	"log"

	"github.com/getlantern/systray"
)

// Start shows the tray widget and blocks until it is quit or ctx is canceled.
func (r *Runner) Start(ctx context.Context) error {
	done := make(chan struct{})

	go systray.Run(func() {
		r.onReady(ctx)
	}, func() {
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (r *Runner) onReady(ctx context.Context) {
	r.applyStatus()

	toggle := systray.AddMenuItem("Enabled", "Enable or disable IdeaVim")
	if r.Enabled() {
		toggle.Check()
	}
	go onClick(ctx, toggle.ClickedCh, func() {
		enabled, err := r.Toggle()
		if err != nil {
			log.Printf("toggle failed: %v", err)
		}
		if enabled {
			toggle.Check()
		} else {
			toggle.Uncheck()
		}
		r.applyStatus()
	})

	systray.AddSeparator()
	for _, link := range r.Links() {
		mi := systray.AddMenuItem(link.Label, link.Tooltip)
		if img, err := r.trayImage(link.Icon); err != nil {
			log.Printf("tray icon for %s: %v", link.Label, err)
		} else {
			mi.SetIcon(img)
		}
		target := link.URL
		go onClick(ctx, mi.ClickedCh, func() {
			go openURL(target)
		})
	}

	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Exit the application")
	go func() {
		select {
		case <-ctx.Done():
		case <-quit.ClickedCh:
		}
		systray.Quit()
	}()
}

func (r *Runner) applyStatus() {
	icon, tooltip := r.StatusIcon()
	img, err := r.trayImage(icon)
	if err != nil {
		log.Printf("tray status icon: %v", err)
	} else {
		systray.SetIcon(img)
	}
	systray.SetTooltip(tooltip)
}

func onClick(ctx context.Context, ch <-chan struct{}, fn func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			fn()
		}
	}
}
