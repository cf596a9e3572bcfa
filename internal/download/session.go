package download

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-remote/internal/model"
	"github.com/ytget/yt-remote/internal/platform"
)

// User-facing messages
const (
	SearchFailedMessage   = "Could not find video."
	LaunchRejectedMessage = "Failed to start download process."
	LaunchFailedMessage   = "Start download failed:"
	JobFailedMessage      = "Download failed."
	detailsSeparator      = " Details: "
)

// Session errors
var (
	ErrSessionClosed = errors.New("session is closed")
	ErrEmptyURL      = errors.New("url is empty")
	ErrNoVideo       = errors.New("no video selected")
	ErrNoResult      = errors.New("no finished file to save")
)

// Snapshot is a copy of the session state handed to observers
type Snapshot struct {
	CurrentURL   string
	Meta         *model.VideoMeta
	ActiveJob    *model.Job
	LastError    string
	Loading      bool // metadata request in flight
	ProgressOpen bool // progress surface visible
}

// SessionOptions configures a Session
type SessionOptions struct {
	PollInterval time.Duration
	DownloadDir  string
	Clock        clockwork.Clock
	Logger       *zerolog.Logger
}

// Session is the single owner of the search/download state.
// Actions are serialized: each one completes, network calls included,
// before the next one starts.
type Session struct {
	backend Backend
	clock   clockwork.Clock
	logger  zerolog.Logger

	actionMu sync.Mutex // serializes Search, Download, CloseProgress, Close
	notifyMu sync.Mutex // keeps observer deliveries ordered

	mu           sync.Mutex
	currentURL   string
	meta         *model.VideoMeta
	job          *model.Job
	lastError    string
	loading      bool
	progressOpen bool
	poller       *Poller
	launchCancel context.CancelFunc
	observers    []func(Snapshot)
	pollInterval time.Duration
	downloadDir  string
	closed       bool
}

// NewSession creates a new session over backend
func NewSession(backend Backend, opts SessionOptions) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Session{
		backend:      backend,
		clock:        clock,
		logger:       logger.With().Str("component", "session").Logger(),
		pollInterval: ClampPollInterval(opts.PollInterval),
		downloadDir:  opts.DownloadDir,
	}
}

// Subscribe registers an observer called with a fresh snapshot after every state change.
// Observers run outside the session lock and must not call Session actions synchronously.
func (s *Session) Subscribe(observer func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// SetPollInterval sets the interval used by pollers created from now on
func (s *Session) SetPollInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollInterval = ClampPollInterval(d)
}

// SetDownloadDirectory sets the directory SaveResult writes into
func (s *Session) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// Snapshot returns a deep copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentURL:   s.currentURL,
		Meta:         s.meta.Clone(),
		ActiveJob:    s.job.Clone(),
		LastError:    s.lastError,
		Loading:      s.loading,
		ProgressOpen: s.progressOpen,
	}
}

// Search fetches metadata for rawURL and stores it as the current video.
func (s *Session) Search(ctx context.Context, rawURL string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	url := strings.TrimSpace(rawURL)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.lastError = ""
	s.meta = nil
	s.currentURL = url
	s.loading = true
	s.mu.Unlock()
	s.notify()

	var meta *model.VideoMeta
	err := ErrEmptyURL
	if url != "" {
		meta, err = s.backend.FetchMeta(ctx, url)
	}

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastError = withDetails(SearchFailedMessage, platform.ErrorDetail(err))
	} else {
		s.meta = meta
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Video info request failed")
		return err
	}
	s.logger.Info().Str("url", url).Int("streams", len(meta.Streams)).Msg("Video info loaded")
	return nil
}

// Download stops any active job and starts a new one for option.
func (s *Session) Download(ctx context.Context, option model.StreamOption) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.stopActiveJob()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.currentURL == "" || s.meta == nil {
		s.mu.Unlock()
		return ErrNoVideo
	}
	url := s.currentURL
	job := model.NewJob(option.SuggestedFilename())
	job.StartedAt = s.clock.Now()
	s.job = job
	s.lastError = ""
	s.progressOpen = true
	launchCtx, cancel := context.WithCancel(ctx)
	s.launchCancel = cancel
	s.mu.Unlock()
	s.notify()

	jobID, err := s.backend.StartJob(launchCtx, url, option.ID, option.Kind)
	cancel()

	s.mu.Lock()
	s.launchCancel = nil
	if s.job != job {
		// closed while the launch request was pending
		s.mu.Unlock()
		if err == nil {
			s.logger.Info().Str("job_id", jobID).Msg("Launch finished after close, job discarded")
		}
		return context.Canceled
	}
	if err != nil {
		s.job = nil
		s.progressOpen = false
		s.lastError = launchErrorMessage(err)
		s.mu.Unlock()
		s.notify()
		s.logger.Warn().Err(err).Str("itag", option.ID).Msg("Failed to start download")
		return err
	}

	job.ID = jobID
	job.Status = model.JobStatusInitializing
	var poller *Poller
	poller = NewPoller(*job, s.backend, PollerOptions{
		Interval: s.pollInterval,
		Clock:    s.clock,
		Logger:   &s.logger,
		OnUpdate: func(update model.Job) {
			s.handleUpdate(poller, update)
		},
	})
	s.poller = poller
	poller.Start()
	s.mu.Unlock()
	s.notify()

	s.logger.Info().Str("job_id", jobID).Str("file", job.Filename).Msg("Download job tracking started")
	return nil
}

// CloseProgress stops polling, discards the active job and hides the progress surface.
// A launch request still in flight is cancelled.
func (s *Session) CloseProgress() {
	s.AbortLaunch()

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.stopActiveJob()

	s.mu.Lock()
	changed := s.progressOpen
	s.progressOpen = false
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Close tears the session down. Further actions return ErrSessionClosed.
func (s *Session) Close() {
	s.AbortLaunch()

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.stopActiveJob()

	s.mu.Lock()
	s.closed = true
	s.progressOpen = false
	s.loading = false
	s.mu.Unlock()

	s.logger.Debug().Msg("Session closed")
}

// SaveResult copies the finished file of the active job into the download
// directory under a name that does not exist yet, and returns the saved path.
func (s *Session) SaveResult(ctx context.Context) (string, error) {
	s.mu.Lock()
	job := s.job.Clone()
	dir := s.downloadDir
	s.mu.Unlock()

	if job == nil || !job.HasResult() {
		return "", ErrNoResult
	}
	if dir == "" {
		var err error
		if dir, err = platform.GetHomeDownloadsDir(); err != nil {
			return "", err
		}
	}

	f, err := platform.CreateUniqueFile(dir, job.Filename)
	if err != nil {
		return "", err
	}
	path := f.Name()

	n, err := s.backend.DownloadFile(ctx, job.ResultLocation, f)
	closeErr := f.Close()
	if err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "failed to close file")
	}
	if err != nil {
		_ = os.Remove(path)
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to save file")
		return "", err
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Str("path", path).
		Int64("bytes", n).
		Msg("File saved")
	return path, nil
}

// handleUpdate applies a poll update if it comes from the current poller
func (s *Session) handleUpdate(from *Poller, update model.Job) {
	s.mu.Lock()
	if s.poller != from || s.job == nil || s.job.ID != update.ID {
		s.mu.Unlock()
		return
	}
	*s.job = update
	if update.Status == model.JobStatusError {
		s.lastError = withDetails(JobFailedMessage, update.Error)
	}
	s.mu.Unlock()
	s.notify()

	switch update.Status {
	case model.JobStatusComplete:
		s.logger.Info().Str("job_id", update.ID).Str("location", update.ResultLocation).Msg("Job complete")
	case model.JobStatusError:
		s.logger.Warn().Str("job_id", update.ID).Str("error", update.Error).Msg("Job failed")
	}
}

// stopActiveJob synchronously stops the current poller and drops the job.
// Must be called with actionMu held and mu not held.
func (s *Session) stopActiveJob() {
	s.mu.Lock()
	poller := s.poller
	s.poller = nil
	hadJob := s.job != nil
	s.job = nil
	s.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
	if hadJob {
		s.notify()
	}
}

// AbortLaunch cancels a StartJob request that is in flight and discards its
// placeholder job. It does not wait for the action lock, so it takes effect
// while Download is still running. Without a pending launch it does nothing.
func (s *Session) AbortLaunch() {
	s.mu.Lock()
	cancel := s.launchCancel
	discarded := cancel != nil && s.job != nil && s.job.IsPlaceholder()
	if discarded {
		s.job = nil
		s.progressOpen = false
	}
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if discarded {
		s.notify()
	}
}

func (s *Session) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	snap := s.snapshotLocked()
	observers := make([]func(Snapshot), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, observer := range observers {
		observer(snap)
	}
}

func launchErrorMessage(err error) string {
	if _, ok := platform.AsRejectedError(err); ok {
		return withDetails(LaunchRejectedMessage, platform.ErrorDetail(err))
	}
	return LaunchFailedMessage + " " + platform.ErrorDetail(err)
}

func withDetails(message, detail string) string {
	if detail == "" {
		return message
	}
	return message + detailsSeparator + detail
}
