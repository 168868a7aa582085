//go:build !linux && !darwin && !windows

package hal

const defaultWindowsKitsRoot = ""

func isInteractiveShell() bool { return false }
