package auth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser launches the user's default browser at url. Failures are not
// fatal; the consent URL is always printed so the user can open it manually.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}
