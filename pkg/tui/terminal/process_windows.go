// ABOUTME: Windows stub for ProcessTerminal resize handling
// ABOUTME: No SIGWINCH on Windows; the size read when the dashboard starts is kept

//go:build windows

package terminal

func (t *ProcessTerminal) startResizeListener() {}
