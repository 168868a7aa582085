//go:build linux || darwin

package hal

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const defaultWindowsKitsRoot = ""

func isTty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

func isInteractiveShell() bool {
	if !isTty() {
		return false
	}
	switch term := os.Getenv("TERM"); term {
	case "xterm", "alacritty", "screen", "tmux":
		return true
	default:
		return strings.HasPrefix(term, "xterm-") || strings.HasPrefix(term, "screen-") || strings.HasPrefix(term, "tmux-")
	}
}
