//go:build windows

package hal

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/poppolopoppo/vsexport/internal/base"
)

const defaultWindowsKitsRoot = "C:/Program Files (x86)/Windows Kits"

// Virtual terminal processing is needed for ANSI colors in the legacy console
func isInteractiveShell() bool {
	stdout := windows.Handle(os.Stdout.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(stdout, &mode); err != nil {
		return false
	}
	if err := windows.SetConsoleMode(stdout, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		base.LogVerbose(LogHAL, "failed to set console mode with %v", err)
		return false
	}
	return true
}
