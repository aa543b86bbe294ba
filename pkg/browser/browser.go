// Package browser opens URLs with the desktop's default handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens the specified URL in the default browser without waiting for it
func Open(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("opening a browser is not supported on %s", goos)
	}
}
