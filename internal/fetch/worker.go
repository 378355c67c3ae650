package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/driftfm/drift/internal/tracks"
)

const userAgent = "drift/1.0 (https://github.com/driftfm/drift)"

// ErrInvalidPayload is returned when a fetched body is not playable audio.
var ErrInvalidPayload = errors.New("invalid audio payload")

// Options configures the worker pool.
type Options struct {
	// Timeout bounds a single fetch attempt.
	Timeout time.Duration
	// RetryDelay is the pause after a failed attempt, so a failing
	// remote is not hammered in a hot loop.
	RetryDelay time.Duration
	// Workers is the number of concurrent fetchers. Values above one
	// relax playback order to fetch-completion order.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 3 * time.Second
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 3 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// Pool runs fetch workers that pull candidates from a source, download
// their audio, and push ready tracks into the queue. Failures are retried
// with a fresh candidate; they never reach the control loop.
type Pool struct {
	source tracks.Source
	queue  *Queue
	client *http.Client
	opts   Options
	log    *logrus.Entry

	wg sync.WaitGroup
}

// NewPool creates a worker pool feeding the given queue.
func NewPool(source tracks.Source, queue *Queue, opts Options) *Pool {
	opts = opts.withDefaults()
	return &Pool{
		source: source,
		queue:  queue,
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		log:    logrus.WithField("component", "fetch"),
	}
}

// Start launches the workers. They run until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := range p.opts.Workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx, i)
		}()
	}
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	log := p.log.WithField("worker", id)
	for {
		if ctx.Err() != nil {
			return
		}

		candidate := p.source.Next()
		data, err := p.download(ctx, candidate.URL)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).WithField("url", candidate.URL).
				Debug("fetch failed, retrying with a new candidate")
			if !sleep(ctx, p.opts.RetryDelay) {
				return
			}
			continue
		}

		ready := tracks.Ready{Track: candidate.Metadata(), Data: data}
		if err := p.queue.Push(ctx, ready); err != nil {
			return
		}
		log.WithField("track", candidate.DisplayName).Debug("track buffered")
	}
}

// download fetches the audio bytes for a URL within a single attempt.
func (p *Pool) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !looksLikeAudio(data) {
		return nil, ErrInvalidPayload
	}
	return data, nil
}

// looksLikeAudio rejects bodies that cannot be a supported stream:
// MP3 (ID3 tag or frame sync), FLAC, or Ogg.
func looksLikeAudio(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch {
	case data[0] == 'I' && data[1] == 'D' && data[2] == '3':
		return true
	case data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return true
	case string(data[:4]) == "fLaC":
		return true
	case string(data[:4]) == "OggS":
		return true
	}
	return false
}

// sleep waits for d or until ctx is cancelled; reports whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
