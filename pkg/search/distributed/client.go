package distributed

import (
	"net/rpc"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coredds/enigma-breaker/pkg/search"
)

// speedSampleSize is how many trials a worker evaluates before reporting
// its SPEED sample; each worker reports at most one.
const speedSampleSize = 1000

// Client connects to a Master, spawns a per-core worker set, and pulls
// batches until the job queue reports empty.
type Client struct {
	rpc      *rpc.Client
	hostname string
	log      zerolog.Logger
}

// Connect dials addr and authenticates with secret, retrying with
// exponential backoff until the master appears or maxAttempts is
// exhausted.
func Connect(addr, secret string, maxAttempts int, log zerolog.Logger) (*Client, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	backoff := 100 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		conn, err := rpc.Dial("tcp", addr)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Str("addr", addr).Int("attempt", attempt+1).Msg("master not reachable, retrying")
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		var resp AuthResponse
		req := AuthRequest{Secret: secret, Hostname: hostname}
		if err := conn.Call(serviceName+".Authenticate", req, &resp); err != nil {
			conn.Close()
			return nil, transportErrorf("authenticating with %s: %v", addr, err)
		}
		return &Client{rpc: conn, hostname: hostname, log: log}, nil
	}
	return nil, transportErrorf("could not reach master at %s after %d attempts: %v", addr, maxAttempts, lastErr)
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.rpc.Close() }

// Run spawns workers workers pulling batches until the job queue is
// drained, reports one SPEED sample from each worker that evaluates at
// least speedSampleSize trials and a single FINAL once
// every worker has stopped, and returns every match found locally (the
// master also aggregates them from the result-queue push).
func (c *Client) Run(workers int) ([]search.Match, error) {
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	var matchesMu sync.Mutex
	var allMatches []search.Match
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := c.runWorker()
			if err != nil {
				errCh <- err
				return
			}
			matchesMu.Lock()
			allMatches = append(allMatches, m...)
			matchesMu.Unlock()
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	var resp ResultResponse
	if err := c.rpc.Call(serviceName+".PushResult", ResultRequest{Hostname: c.hostname, Kind: ResultFinal}, &resp); err != nil {
		return nil, transportErrorf("reporting FINAL: %v", err)
	}
	c.log.Info().Str("client", c.hostname).Msg("reported FINAL")

	return allMatches, nil
}

func (c *Client) runWorker() ([]search.Match, error) {
	var matches []search.Match
	trialsSinceSample := 0
	sampleStart := time.Now()
	reportedSpeed := false

	for {
		var job PullJobResponse
		if err := c.rpc.Call(serviceName+".PullJob", PullJobRequest{Hostname: c.hostname}, &job); err != nil {
			return nil, transportErrorf("pulling job: %v", err)
		}
		if job.Empty {
			return matches, nil
		}

		var batchMatches []search.Match
		for _, t := range job.Batch {
			m, ok, err := search.Evaluate(job.Ciphertext, job.Crib, t)
			if err != nil {
				return nil, err
			}
			if ok {
				batchMatches = append(batchMatches, m)
			}
			trialsSinceSample++
		}

		if len(batchMatches) > 0 {
			matches = append(matches, batchMatches...)
			var resp ResultResponse
			req := ResultRequest{Hostname: c.hostname, Kind: ResultMatch, Matches: batchMatches}
			if err := c.rpc.Call(serviceName+".PushResult", req, &resp); err != nil {
				return nil, transportErrorf("reporting matches: %v", err)
			}
		}

		if !reportedSpeed && trialsSinceSample >= speedSampleSize {
			elapsed := time.Since(sampleStart)
			perSecond := float64(trialsSinceSample) / elapsed.Seconds()
			var resp ResultResponse
			req := ResultRequest{Hostname: c.hostname, Kind: ResultSpeed, TrialsPerSecond: perSecond, Cores: 1}
			if err := c.rpc.Call(serviceName+".PushResult", req, &resp); err != nil {
				return nil, transportErrorf("reporting speed: %v", err)
			}
			reportedSpeed = true
		}
	}
}
