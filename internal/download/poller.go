package download

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-remote/internal/model"
)

// Poll interval limits
const (
	DefaultPollInterval = 500 * time.Millisecond
	MinPollInterval     = 100 * time.Millisecond
	MaxPollInterval     = 10 * time.Second
)

// PollerOptions configures a Poller
type PollerOptions struct {
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   *zerolog.Logger

	// OnUpdate receives a copy of the job after every applied status report.
	// It runs on the poll goroutine and must not call Stop.
	OnUpdate func(model.Job)
}

// Poller queries the status of one job on a fixed cadence until the job
// reaches a terminal state or Stop is called. Every tick sends its own query,
// so a hung request never delays the next one. Responses are applied in tick
// order; one older than the last applied response is dropped.
type Poller struct {
	source   StatusSource
	interval time.Duration
	clock    clockwork.Clock
	logger   zerolog.Logger
	onUpdate func(model.Job)

	mu       sync.Mutex
	job      model.Job
	started  bool
	stopped  bool
	finished bool
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	seq      uint64                        // last tick number handed out
	applied  uint64                        // tick number of the last applied response
	inflight map[uint64]context.CancelFunc // pending queries by tick number
	queries  sync.WaitGroup

	// deliverMu keeps apply and OnUpdate of one response together
	deliverMu sync.Mutex

	// afterPoll runs once a query has been handled, applied or not
	afterPoll func()
}

// NewPoller creates a poller for job. The job must carry the id returned by the launcher.
func NewPoller(job model.Job, source StatusSource, opts PollerOptions) *Poller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Poller{
		source:   source,
		interval: ClampPollInterval(opts.Interval),
		clock:    clock,
		logger:   logger.With().Str("job_id", job.ID).Logger(),
		onUpdate: opts.OnUpdate,
		job:      job,
		done:     make(chan struct{}),
		inflight: make(map[uint64]context.CancelFunc),
	}
}

// ClampPollInterval returns d limited to the supported range, or the default if d is not positive
func ClampPollInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultPollInterval
	case d < MinPollInterval:
		return MinPollInterval
	case d > MaxPollInterval:
		return MaxPollInterval
	default:
		return d
	}
}

// Start puts the job into the initializing state and arms the ticker.
// The first query happens one interval later. Calling Start again, or after Stop, does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}
	p.started = true
	p.job.Status = model.JobStatusInitializing
	p.job.Progress = 0

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	ticker := p.clock.NewTicker(p.interval)

	p.logger.Debug().Dur("interval", p.interval).Msg("Polling started")
	go p.run(ctx, ticker)
}

// Stop halts polling and waits until no query is pending. In-flight queries
// are cancelled and their results discarded. Stop is idempotent.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		cancel := p.cancel
		p.mu.Unlock()

		if cancel == nil {
			// never started
			close(p.done)
			return
		}
		cancel()
		<-p.done
		p.logger.Debug().Msg("Polling stopped")
	})
}

// Done is closed when the poll goroutine has exited
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Job returns a copy of the current job state
func (p *Poller) Job() model.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.job
}

// JobID returns the id of the polled job
func (p *Poller) JobID() string {
	return p.job.ID
}

func (p *Poller) run(ctx context.Context, ticker clockwork.Ticker) {
	defer close(p.done)
	defer p.queries.Wait()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.mu.Lock()
			if p.finished || p.stopped {
				p.mu.Unlock()
				return
			}
			p.seq++
			seq := p.seq
			queryCtx, cancel := context.WithCancel(ctx)
			p.inflight[seq] = cancel
			p.queries.Add(1)
			p.mu.Unlock()

			go p.poll(queryCtx, seq)
		}
	}
}

// poll runs the query of tick seq and applies its result unless a newer
// response was applied first or polling is over.
func (p *Poller) poll(ctx context.Context, seq uint64) {
	defer p.queries.Done()
	if p.afterPoll != nil {
		defer p.afterPoll()
	}

	report, err := p.source.JobStatus(ctx, p.job.ID)

	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	p.mu.Lock()
	if cancel, ok := p.inflight[seq]; ok {
		cancel()
		delete(p.inflight, seq)
	}
	if p.stopped || p.finished || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.mu.Unlock()
		p.logger.Debug().Err(err).Uint64("tick", seq).Msg("Status query failed, waiting for next tick")
		return
	}
	if seq <= p.applied {
		p.mu.Unlock()
		p.logger.Debug().Uint64("tick", seq).Msg("Stale status response dropped")
		return
	}

	p.applied = seq
	// older queries can only produce stale responses
	for pending, cancel := range p.inflight {
		if pending < seq {
			cancel()
			delete(p.inflight, pending)
		}
	}
	p.apply(report)
	job := p.job
	if job.Status.IsTerminal() {
		p.finished = true
		p.cancel()
	}
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(job)
	}
}

// apply adopts a status report. Must be called with p.mu held.
func (p *Poller) apply(report *model.JobReport) {
	current := p.job.Status
	next := current

	raw := strings.TrimSpace(report.Status)
	if raw != "" {
		next = model.ParseJobStatus(raw)
		if next == model.JobStatusError && !strings.EqualFold(raw, string(model.JobStatusError)) {
			p.logger.Warn().Str("status", raw).Msg("Unknown job status, treating as error")
			if report.Error == "" {
				report.Error = fmt.Sprintf("unexpected status %q", raw)
			}
		}
	}

	if next != current && !current.CanTransitionTo(next) {
		p.logger.Warn().
			Str("from", current.String()).
			Str("to", next.String()).
			Msg("Unexpected status transition")
	}

	p.job.Status = next
	p.job.Progress = report.Progress

	switch next {
	case model.JobStatusComplete:
		p.job.ResultLocation = p.source.FileURL(p.job.ID)
		p.job.FinishedAt = p.clock.Now()
	case model.JobStatusError:
		p.job.Error = report.Error
		p.job.FinishedAt = p.clock.Now()
	}

	p.logger.Debug().
		Str("status", next.String()).
		Float64("progress", report.Progress).
		Msg("Job status updated")
}
