// ABOUTME: Screen runs the fixed-cadence render loop that writes composed frames
// ABOUTME: Each frame is a full back-buffer written once inside CSI 2026 synchronized output

package tui

import (
	"sync"
	"time"

	"github.com/mauromedda/postdash/pkg/tui/internal/pool"
)

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// FrameFunc composes the back-buffer for a width by height terminal.
type FrameFunc func(width, height int) string

// DefaultInterval renders 10 frames per second.
const DefaultInterval = 100 * time.Millisecond

// Screen repeatedly composes a frame and writes it to the terminal.
type Screen struct {
	writer Writer
	frame  FrameFunc

	mu       sync.Mutex
	width    int
	height   int
	interval time.Duration
	running  bool
	last     string

	intervalCh chan time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
	stopOnce   sync.Once
}

// NewScreen creates a Screen writing frames from fn to w.
func NewScreen(w Writer, termWidth, termHeight int, fn FrameFunc) *Screen {
	return &Screen{
		writer:     w,
		frame:      fn,
		width:      termWidth,
		height:     termHeight,
		interval:   DefaultInterval,
		intervalCh: make(chan time.Duration, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Size returns the dimensions frames are composed for.
func (s *Screen) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetSize updates the terminal dimensions; the next frame uses them.
func (s *Screen) SetSize(w, h int) {
	s.mu.Lock()
	s.width = w
	s.height = h
	s.last = ""
	s.mu.Unlock()
}

// SetInterval changes the frame cadence. Non-positive values are ignored.
func (s *Screen) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
	select {
	case s.intervalCh <- d:
	default:
		// A change is already pending; the loop reads s.interval when it drains it.
	}
}

// Interval returns the current frame cadence.
func (s *Screen) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Start launches the render loop. Calling Start twice is a no-op.
func (s *Screen) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	interval := s.interval
	s.mu.Unlock()

	go s.loop(interval)
}

// Stop ends the render loop and waits for it to exit, which happens within
// one frame interval. Safe to call multiple times.
func (s *Screen) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		wasRunning := s.running
		s.running = false
		s.mu.Unlock()
		close(s.stopCh)
		if wasRunning {
			<-s.doneCh
		}
	})
}

// RenderOnce composes and writes a single frame synchronously.
func (s *Screen) RenderOnce() {
	s.render()
}

func (s *Screen) loop(interval time.Duration) {
	defer close(s.doneCh)

	s.render()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.intervalCh:
			ticker.Reset(s.Interval())
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Screen) render() {
	s.mu.Lock()
	w, h := s.width, s.height
	last := s.last
	s.mu.Unlock()

	if w <= 0 || h <= 0 {
		return
	}

	out := s.frame(w, h)
	if out == last {
		return
	}
	buf := pool.GetBuffer()
	buf.Grow(len(syncBegin) + len(out) + len(syncEnd))
	buf.WriteString(syncBegin)
	buf.WriteString(out)
	buf.WriteString(syncEnd)
	_, _ = s.writer.Write(buf.Bytes())
	pool.PutBuffer(buf)

	s.mu.Lock()
	s.last = out
	s.mu.Unlock()
}
