package writers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// ForwardWriter tees crash-report text to a terminal writer while
// keeping a copy, and ships the complete report to a collector endpoint
// when the report is released with Close. Delivery is synchronous with
// bounded retries: the process is terminating, so there is no worker to
// hand off to.
type ForwardWriter struct {
	ctx    context.Context
	next   io.Writer
	buf    bytes.Buffer
	host   string
	token  string
	retry  int
	delay  time.Duration
	http   *http.Client
	closed atomic.Bool
}

// NewForwardWriter creates a writer that forwards everything written
// through it to next and, on Close, delivers the accumulated report to
// the configured collector.
func NewForwardWriter(ctx context.Context, next io.Writer, config ConfigForwardInterface) (*ForwardWriter, error) {
	return &ForwardWriter{
		ctx:   ctx,
		next:  next,
		host:  config.Host(),
		token: config.Token(),
		retry: config.RetryCount(),
		delay: config.RetryDelay(),
		http: &http.Client{
			Timeout: config.Timeout(),
		},
	}, nil
}

// Write passes p through to the terminal writer and buffers a copy for
// delivery. The collector is never contacted here, so a down collector
// cannot abort the on-terminal report.
func (w *ForwardWriter) Write(p []byte) (n int, err error) {
	if w.closed.Load() {
		return 0, ErrWriterIsClosed
	}

	n, err = w.next.Write(p)
	w.buf.Write(p[:n])
	return n, err
}

// Close delivers the buffered report and rejects further writes. It
// returns the last delivery error after retries are exhausted; an empty
// report is not delivered.
func (w *ForwardWriter) Close() error {
	if w.closed.Swap(true) {
		return ErrWriterIsClosed
	}
	if w.buf.Len() == 0 {
		return nil
	}
	return w.sendRequest(w.buf.Bytes())
}

func (w *ForwardWriter) sendRequest(b []byte) error {
	var lastErr error
	for attempt := 0; attempt <= w.retry; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(w.delay):
			case <-w.ctx.Done():
				return w.ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(w.ctx, http.MethodPost, w.host, bytes.NewReader(b))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
		req.Header.Set("Authorization", w.token)

		resp, err := w.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("collector replied %s", resp.Status)
			continue
		}
		return nil
	}
	return lastErr
}
