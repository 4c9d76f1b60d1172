// ABOUTME: Defines the Terminal interface for raw mode, size queries, keystroke input, and output
// ABOUTME: Implementations target the real process TTY or an in-memory virtual terminal

package terminal

// Terminal abstracts low-level terminal operations: raw mode, size queries,
// keystroke reads, output writing, and resize notifications.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	// Read blocks until one keystroke's bytes are available.
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	OnResize(fn func(width, height int))
}
