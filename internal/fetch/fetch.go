// ABOUTME: Fetch coordinator: per-handle post cache fed by a bounded worker pool
// ABOUTME: Completions are posted to a channel and applied by the owning goroutine

package fetch

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/postdash/internal/feed"
)

// DefaultLimit is how many posts are requested per account.
const DefaultLimit = 100

// DefaultWorkers bounds concurrent fetches.
const DefaultWorkers = 2

// State is the lifecycle of a cache entry.
type State int

const (
	Absent State = iota
	InFlight
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case InFlight:
		return "in-flight"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is a finished fetch job, delivered on Results.
type Result struct {
	Handle string
	Posts  []feed.Post // newest first, as fetched
	Err    error
	seq    uint64
}

type entry struct {
	state State
	posts []feed.Post // oldest first
	err   error
	seq   uint64
}

// Coordinator owns the post cache. Request and Refetch never block; jobs run
// on at most Workers goroutines.
type Coordinator struct {
	fetcher feed.Fetcher
	limit   int
	ctx     context.Context
	group   *errgroup.Group

	results chan Result
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}

	mu        sync.Mutex
	entries   map[string]*entry
	queue     []job
	seq       uint64
	closeOnce sync.Once
}

type job struct {
	handle string
	seq    uint64
}

// Options configures a Coordinator.
type Options struct {
	Limit   int
	Workers int
}

// New starts a coordinator whose jobs run under ctx.
func New(ctx context.Context, f feed.Fetcher, opts Options) *Coordinator {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	g := new(errgroup.Group)
	g.SetLimit(opts.Workers)

	c := &Coordinator{
		fetcher: f,
		limit:   opts.Limit,
		ctx:     ctx,
		group:   g,
		results: make(chan Result, 16),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		entries: make(map[string]*entry),
	}
	go c.dispatch()
	return c
}

// Results delivers finished jobs. Pass each one to Apply.
func (c *Coordinator) Results() <-chan Result {
	return c.results
}

// Request schedules a fetch for handle unless it already has an entry in
// any state. It reports whether a job was queued.
func (c *Coordinator) Request(handle string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[handle]; ok {
		return false
	}
	c.entries[handle] = &entry{}
	c.enqueueLocked(handle)
	return true
}

// Refetch schedules a fresh fetch for handle unless one is already in
// flight. Cached posts stay readable until the new result is applied.
func (c *Coordinator) Refetch(handle string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[handle]
	if ok && e.state == InFlight {
		return false
	}
	if !ok {
		c.entries[handle] = &entry{}
	}
	c.enqueueLocked(handle)
	return true
}

func (c *Coordinator) enqueueLocked(handle string) {
	e := c.entries[handle]
	c.seq++
	e.seq = c.seq
	e.state = InFlight
	c.queue = append(c.queue, job{handle: handle, seq: e.seq})
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Apply stores a finished job. Results for forgotten handles or superseded
// jobs are dropped. It reports whether the cache changed.
func (c *Coordinator) Apply(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[r.Handle]
	if !ok || e.seq != r.seq {
		return false
	}
	if r.Err != nil {
		e.state = Failed
		e.err = r.Err
		return true
	}
	posts := slices.Clone(r.Posts)
	slices.Reverse(posts)
	e.state = Ready
	e.posts = posts
	e.err = nil
	return true
}

// Forget drops the entry for handle; an in-flight result for it is ignored.
func (c *Coordinator) Forget(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, handle)
}

// State returns the entry state for handle.
func (c *Coordinator) State(handle string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[handle]; ok {
		return e.state
	}
	return Absent
}

// Posts returns a copy of the cached posts for handle, oldest first, plus
// the last fetch error when the entry failed.
func (c *Coordinator) Posts(handle string) ([]feed.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[handle]
	if !ok {
		return nil, nil
	}
	return slices.Clone(e.posts), e.err
}

// Close stops dispatching. Jobs already running finish in the background and
// their results are discarded. Safe to call more than once.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Wait blocks until the dispatcher has exited and every started job has
// returned. Call after Close.
func (c *Coordinator) Wait() error {
	<-c.stopped
	return c.group.Wait()
}

func (c *Coordinator) dispatch() {
	defer close(c.stopped)
	for {
		c.mu.Lock()
		var next *job
		if len(c.queue) > 0 {
			j := c.queue[0]
			c.queue = c.queue[1:]
			next = &j
		}
		c.mu.Unlock()

		if next == nil {
			select {
			case <-c.done:
				return
			case <-c.wake:
				continue
			}
		}

		select {
		case <-c.done:
			return
		default:
		}
		j := *next
		// Blocks while every worker is busy.
		c.group.Go(func() error {
			c.run(j)
			return nil
		})
	}
}

func (c *Coordinator) run(j job) {
	start := time.Now()
	log.Debug().Str("handle", j.handle).Msg("fetch started")

	posts, err := c.fetch(j.handle)
	if err != nil {
		log.Warn().Err(err).Str("handle", j.handle).Dur("took", time.Since(start)).Msg("fetch failed")
	} else {
		log.Debug().Str("handle", j.handle).Int("posts", len(posts)).Dur("took", time.Since(start)).Msg("fetch finished")
	}

	select {
	case c.results <- Result{Handle: j.handle, Posts: posts, Err: err, seq: j.seq}:
	case <-c.done:
	}
}

func (c *Coordinator) fetch(handle string) (posts []feed.Post, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return c.fetcher.FetchPosts(c.ctx, handle, c.limit)
}
