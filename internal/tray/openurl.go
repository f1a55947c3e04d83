package tray

import (
	"net/url"
	"os/exec"
	"runtime"

	"github.com/example/vimicons/internal/logging"
)

func openURL(raw string) {
	if raw == "" {
		return
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		logging.Debugf("refusing to open invalid URL %q: %v", raw, err)
		return
	}

	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", raw).Start()
	case "darwin":
		err = exec.Command("open", raw).Start()
	default:
		err = exec.Command("xdg-open", raw).Start()
	}
	if err != nil {
		logging.Debugf("open %s: %v", raw, err)
	}
}
