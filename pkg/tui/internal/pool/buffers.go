// ABOUTME: sync.Pool of byte buffers reused for frame writes
// ABOUTME: Every frame is several kilobytes, rendered ten times a second

package pool

import (
	"bytes"
	"sync"
)

// maxKept drops oversized buffers, e.g. after a frame on a huge terminal,
// instead of pinning them in the pool.
const maxKept = 1 << 20

var frames = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer returns an empty buffer.
func GetBuffer() *bytes.Buffer {
	buf := frames.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool. buf must not be used afterwards.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxKept {
		return
	}
	buf.Reset()
	frames.Put(buf)
}
