package hal

import (
	"github.com/poppolopoppo/vsexport/internal/base"
)

var LogHAL = base.NewLogCategory("HAL")

// Returns true when the standard output accepts ANSI escape sequences
func InitHAL() bool {
	interactive := isInteractiveShell()
	base.SetEnableAnsiColor(interactive)
	base.LogTrace(LogHAL, "interactive shell: %v", interactive)
	return interactive
}

// Windows Kits folder of the host, empty when the host is not running Windows
func DefaultWindowsKitsRoot() string {
	return defaultWindowsKitsRoot
}
