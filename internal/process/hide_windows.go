//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

// hideWindow prevents a console window from flashing up when the
// formatter is launched from a GUI host.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
