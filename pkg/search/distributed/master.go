package distributed

import (
	"fmt"
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/coredds/enigma-breaker/pkg/search"
)

var (
	batchesDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enigma_breaker",
		Subsystem: "master",
		Name:      "batches_dispatched_total",
		Help:      "Job batches handed out to clients.",
	})
	matchesFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enigma_breaker",
		Subsystem: "master",
		Name:      "matches_found_total",
		Help:      "Crib matches reported by all clients.",
	})
	clientsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "enigma_breaker",
		Subsystem: "master",
		Name:      "clients_connected",
		Help:      "Clients that have authenticated and not yet reported FINAL.",
	})
	aggregateTrialsPerSecond = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "enigma_breaker",
		Subsystem: "master",
		Name:      "aggregate_trials_per_second",
		Help:      "Sum of the most recent per-client speed report.",
	})
)

// Master holds the job and result queues for distributed search, and
// exposes them over net/rpc. Authenticate checks the shared secret and
// registers the client; PullJob and PushResult do not check that the
// calling connection has authenticated. Termination
// requires every client that ever authenticated to report FINAL before
// shutting down — a stricter condition than "all but one", chosen to
// avoid silently dropping the last client's matches.
type Master struct {
	secret     string
	ciphertext string
	crib       string
	log        zerolog.Logger

	mu           sync.Mutex
	jobs         [][]search.Trial
	nextJob      int
	clientSpeeds map[string]float64
	finalClients map[string]bool
	knownClients map[string]bool

	matchesMu sync.Mutex
	matches   []search.Match

	listener net.Listener
	done     chan struct{}
	doneOnce sync.Once
}

// NewMaster builds a Master ready to serve batches drawn from trials,
// split into fixed-size groups.
func NewMaster(secret, ciphertext, crib string, trials []search.Trial, batchSize int, log zerolog.Logger) *Master {
	if batchSize < 1 {
		batchSize = search.DefaultBatchSize
	}
	var jobs [][]search.Trial
	for i := 0; i < len(trials); i += batchSize {
		end := i + batchSize
		if end > len(trials) {
			end = len(trials)
		}
		jobs = append(jobs, trials[i:end])
	}
	return &Master{
		secret:       secret,
		ciphertext:   ciphertext,
		crib:         crib,
		log:          log,
		jobs:         jobs,
		clientSpeeds: make(map[string]float64),
		finalClients: make(map[string]bool),
		knownClients: make(map[string]bool),
		done:         make(chan struct{}),
	}
}

// Queue is the net/rpc-exposed service. Its methods are exported purely
// for rpc.Register's sake; callers use Master.ListenAndServe.
type Queue struct {
	m *Master
}

// Authenticate validates the shared secret and registers the client as
// known, so its eventual FINAL is required before shutdown.
func (q *Queue) Authenticate(req AuthRequest, resp *AuthResponse) error {
	if req.Secret != q.m.secret {
		return transportErrorf("authentication failed for %s", req.Hostname)
	}
	q.m.mu.Lock()
	q.m.knownClients[req.Hostname] = true
	q.m.mu.Unlock()
	clientsConnected.Inc()
	q.m.log.Info().Str("client", req.Hostname).Msg("client authenticated")
	resp.OK = true
	return nil
}

// PullJob hands out the next unclaimed batch, or Empty=true once the
// queue is drained.
func (q *Queue) PullJob(req PullJobRequest, resp *PullJobResponse) error {
	q.m.mu.Lock()
	defer q.m.mu.Unlock()
	if q.m.nextJob >= len(q.m.jobs) {
		resp.Empty = true
		return nil
	}
	resp.Batch = q.m.jobs[q.m.nextJob]
	resp.Ciphertext = q.m.ciphertext
	resp.Crib = q.m.crib
	q.m.nextJob++
	batchesDispatched.Inc()
	return nil
}

// PushResult ingests one of the three result-queue message kinds.
func (q *Queue) PushResult(req ResultRequest, resp *ResultResponse) error {
	switch req.Kind {
	case ResultMatch:
		q.m.matchesMu.Lock()
		q.m.matches = append(q.m.matches, req.Matches...)
		q.m.matchesMu.Unlock()
		matchesFound.Add(float64(len(req.Matches)))
		q.m.log.Info().Str("client", req.Hostname).Int("count", len(req.Matches)).Msg("matches reported")

	case ResultSpeed:
		q.m.mu.Lock()
		q.m.clientSpeeds[req.Hostname] = req.TrialsPerSecond
		var total float64
		for _, s := range q.m.clientSpeeds {
			total += s
		}
		q.m.mu.Unlock()
		aggregateTrialsPerSecond.Set(total)
		q.m.log.Debug().Str("client", req.Hostname).Float64("trials_per_sec", req.TrialsPerSecond).
			Int("cores", req.Cores).Msg("speed sample")

	case ResultFinal:
		q.m.mu.Lock()
		q.m.finalClients[req.Hostname] = true
		allDone := len(q.m.finalClients) >= len(q.m.knownClients)
		q.m.mu.Unlock()
		clientsConnected.Dec()
		q.m.log.Info().Str("client", req.Hostname).Msg("client reported FINAL")
		if allDone {
			q.m.doneOnce.Do(func() { close(q.m.done) })
		}
	}
	return nil
}

// Listen binds addr (use ":0" to let the OS assign a port, e.g. for
// tests) and starts accepting client connections in the background. It
// returns the bound address.
func (m *Master) Listen(addr string) (string, error) {
	q := &Queue{m: m}
	server := rpc.NewServer()
	if err := server.RegisterName(serviceName, q); err != nil {
		return "", fmt.Errorf("distributed: registering RPC service: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", transportErrorf("listening on %s: %v", addr, err)
	}
	m.listener = listener

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go server.ServeConn(conn)
		}
	}()

	return listener.Addr().String(), nil
}

// Wait blocks until every authenticated client has reported FINAL, then
// closes the listener and returns the aggregated matches. It sleeps
// briefly after the last FINAL so in-flight workers observe the drained
// queue and exit cleanly before the listener closes.
func (m *Master) Wait() ([]search.Match, error) {
	<-m.done
	time.Sleep(200 * time.Millisecond)
	m.listener.Close()

	m.matchesMu.Lock()
	defer m.matchesMu.Unlock()
	return append([]search.Match(nil), m.matches...), nil
}

// ListenAndServe is a convenience wrapper combining Listen and Wait for
// callers that don't need the bound address (e.g. a fixed configured
// port).
func (m *Master) ListenAndServe(addr string) ([]search.Match, error) {
	if _, err := m.Listen(addr); err != nil {
		return nil, err
	}
	return m.Wait()
}
