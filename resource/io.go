package resource

import (
	"context"
	"io"
)

// RateLimitedWriter throttles writes through a Controller's disk
// throughput budget before delegating to the wrapped Writer. It backs
// diskstore.Store's optional IOLimiter.
type RateLimitedWriter struct {
	w   io.Writer
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedWriter wraps w, gating each Write through rc's IO
// budget. ctx bounds how long a Write may wait for budget to free up.
func NewRateLimitedWriter(w io.Writer, rc *Controller, ctx context.Context) *RateLimitedWriter {
	return &RateLimitedWriter{w: w, rc: rc, ctx: ctx}
}

func (w *RateLimitedWriter) Write(p []byte) (n int, err error) {
	if err := w.rc.AcquireIO(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}

// RateLimitedReader throttles reads through a Controller's disk
// throughput budget before delegating to the wrapped Reader.
type RateLimitedReader struct {
	r   io.Reader
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedReader wraps r, gating each Read through rc's IO
// budget. ctx bounds how long a Read may wait for budget to free up.
func NewRateLimitedReader(r io.Reader, rc *Controller, ctx context.Context) *RateLimitedReader {
	return &RateLimitedReader{r: r, rc: rc, ctx: ctx}
}

func (r *RateLimitedReader) Read(p []byte) (n int, err error) {
	// Charge against the full buffer size up front rather than the
	// eventual n: the caller already committed to a read of len(p).
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
