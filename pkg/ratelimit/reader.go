// Package ratelimit throttles file content reads with a token bucket
// so large comparison runs can bound their disk bandwidth.
package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBucketSize keeps bursts at least one comparison buffer large so
// throttled reads stay smooth.
const minBucketSize = 64 * 1024

// Limiter is a token bucket shared by every reader of a run. A nil
// *Limiter disables throttling everywhere it is accepted.
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastRefill time.Time
}

// NewLimiter returns a limiter for the given rate in bytes per second.
// Rates <= 0 mean unlimited and yield a nil limiter.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucketSize,
		tokens:         bucketSize,
		lastRefill:     time.Now(),
	}
}

// Reader wraps r so its reads draw from the bucket. The context
// cancels waits, not in-flight reads.
func (l *Limiter) Reader(ctx context.Context, r io.Reader) io.Reader {
	if l == nil {
		return r
	}
	return &reader{r: r, limiter: l, ctx: ctx}
}

// ReadCloser is Reader for sources that must also be closed.
func (l *Limiter) ReadCloser(ctx context.Context, rc io.ReadCloser) io.ReadCloser {
	if l == nil {
		return rc
	}
	return &readCloser{
		reader: reader{r: rc, limiter: l, ctx: ctx},
		closer: rc,
	}
}

type reader struct {
	r       io.Reader
	limiter *Limiter
	ctx     context.Context
}

func (r *reader) Read(p []byte) (int, error) {
	want := int64(len(p))
	if want > r.limiter.bucketSize {
		want = r.limiter.bucketSize
	}

	if err := r.limiter.wait(r.ctx, want); err != nil {
		return 0, err
	}

	n, err := r.r.Read(p[:want])
	if n > 0 {
		r.limiter.consume(int64(n))
	}
	return n, err
}

type readCloser struct {
	reader
	closer io.Closer
}

func (rc *readCloser) Close() error {
	return rc.closer.Close()
}

// wait blocks until n tokens are available or ctx is done
func (l *Limiter) wait(ctx context.Context, n int64) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= n {
			l.mu.Unlock()
			return nil
		}
		deficit := n - l.tokens
		l.mu.Unlock()

		delay := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if delay < time.Millisecond {
			delay = time.Millisecond
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill credits tokens for elapsed time, capped at the bucket size.
// Callers hold l.mu.
func (l *Limiter) refill() {
	now := time.Now()
	credit := int64(float64(now.Sub(l.lastRefill)) / float64(time.Second) * float64(l.bytesPerSecond))
	if credit <= 0 {
		return
	}
	l.tokens += credit
	if l.tokens > l.bucketSize {
		l.tokens = l.bucketSize
	}
	l.lastRefill = now
}

func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
