// ABOUTME: StdinBuffer reads raw bytes from an io.Reader and dispatches one key per keystroke.
// ABOUTME: A single read may carry many keys; escape sequences and UTF-8 split across reads are reassembled.

package input

import (
	"context"
	"io"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/postdash/pkg/tui/key"
)

const (
	readBufSize = 256
	// escTimeout is how long a lone ESC waits for the rest of a sequence
	// before it is reported as the Escape key.
	escTimeout = 50 * time.Millisecond
	// maxSeqLen bounds a CSI sequence; longer garbage is dropped.
	maxSeqLen = 16
)

// StdinBuffer reads from a reader and dispatches parsed keys via onKey.
type StdinBuffer struct {
	reader io.Reader
	onKey  func(key.Key)
	buf    []byte
}

// NewStdinBuffer creates a StdinBuffer that reads from r and calls onKey for
// each parsed key, in input order.
func NewStdinBuffer(r io.Reader, onKey func(key.Key)) *StdinBuffer {
	return &StdinBuffer{
		reader: r,
		onKey:  onKey,
		buf:    make([]byte, 0, readBufSize),
	}
}

type readResult struct {
	data []byte
	err  error
}

// Start reads until ctx is cancelled or the reader fails. Pending bytes are
// flushed as keys before a read error is returned; cancellation returns
// ctx.Err(). onKey runs on the calling goroutine.
func (b *StdinBuffer) Start(ctx context.Context) error {
	reads := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go b.readLoop(reads, done)

	var wait *time.Timer
	var waitC <-chan time.Time
	stopWait := func() {
		if wait != nil {
			wait.Stop()
			wait, waitC = nil, nil
		}
	}
	defer stopWait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-waitC:
			wait, waitC = nil, nil
			b.flush()
		case r := <-reads:
			stopWait()
			if r.err != nil {
				b.flush()
				return r.err
			}
			b.buf = append(b.buf, r.data...)
			if b.dispatch(false) {
				wait = time.NewTimer(escTimeout)
				waitC = wait.C
			}
		}
	}
}

// readLoop forwards reads until the reader fails or done is closed.
func (b *StdinBuffer) readLoop(ch chan<- readResult, done <-chan struct{}) {
	tmp := make([]byte, readBufSize)
	for {
		n, err := b.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case ch <- readResult{err: err}:
			case <-done:
			}
			return
		}
	}
}

// dispatch emits every complete key at the front of the buffer. It reports
// whether an incomplete sequence is left waiting for more bytes.
func (b *StdinBuffer) dispatch(final bool) (waiting bool) {
	for len(b.buf) > 0 {
		n, k, wait := parse(b.buf, final)
		if wait {
			return true
		}
		b.buf = b.buf[n:]
		b.onKey(k)
	}
	b.buf = b.buf[:0]
	return false
}

// flush emits whatever is buffered, treating incomplete input as final.
func (b *StdinBuffer) flush() {
	b.dispatch(true)
}

// parse decodes one key from the front of buf. When more bytes could
// complete it and final is false, it asks to wait instead.
func parse(buf []byte, final bool) (n int, k key.Key, wait bool) {
	if buf[0] == 0x1b {
		return parseEscape(buf, final)
	}
	if !utf8.FullRune(buf) {
		if !final {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(string(buf[:size])), false
}

func parseEscape(buf []byte, final bool) (int, key.Key, bool) {
	if len(buf) == 1 {
		if !final {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyEscape}, false
	}

	switch buf[1] {
	case '[':
		// CSI: parameter and intermediate bytes, then a final byte 0x40-0x7e.
		for i := 2; i < len(buf) && i < maxSeqLen; i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7e {
				return i + 1, key.ParseKey(string(buf[:i+1])), false
			}
		}
		if len(buf) >= maxSeqLen {
			return maxSeqLen, key.Key{Type: key.KeyUnknown}, false
		}
	case 'O':
		// SS3: exactly one byte follows.
		if len(buf) >= 3 {
			return 3, key.ParseKey(string(buf[:3])), false
		}
	case 0x1b:
		return 1, key.Key{Type: key.KeyEscape}, false
	default:
		if buf[1] >= 0x20 && buf[1] <= 0x7e {
			return 2, key.ParseKey(string(buf[:2])), false
		}
		return 1, key.Key{Type: key.KeyEscape}, false
	}

	// Incomplete CSI or SS3.
	if !final {
		return 0, key.Key{}, true
	}
	return len(buf), key.Key{Type: key.KeyUnknown}, false
}
