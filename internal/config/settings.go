package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/pkg/errors"

	"github.com/ytget/yt-remote/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL         = "api_base_url"
	KeyPollIntervalMs     = "poll_interval_ms"
	KeyDownloadDir        = "download_directory"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyLogLevel           = "log_level"
)

// Environment variables that take precedence over stored preferences
const (
	EnvAPIBaseURL     = "YTREMOTE_API_URL"
	EnvPollIntervalMs = "YTREMOTE_POLL_INTERVAL_MS"
	EnvDownloadDir    = "YTREMOTE_DOWNLOAD_DIR"
	EnvLogLevel       = "YTREMOTE_LOG_LEVEL"
	EnvAppEnv         = "APP_ENV"
)

// Default values
const (
	DefaultAPIBaseURL         = platform.DefaultBaseURL
	DefaultPollIntervalMs     = 500
	MinPollIntervalMs         = 100
	MaxPollIntervalMs         = 10000
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
	DefaultLogLevel           = "info"
	DefaultAppEnv             = "production"
)

// LogLevels lists the levels offered in the settings dialog
var LogLevels = []string{"debug", "info", "warn", "error"}

// ErrInvalidBaseURL is returned for base URLs that are not absolute http(s) URLs
var ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL")

// Settings manages application configuration
type Settings struct {
	app       fyne.App
	lookupEnv func(string) (string, bool)
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app, lookupEnv: os.LookupEnv}
}

// env returns a non-empty environment override
func (s *Settings) env(key string) (string, bool) {
	v, ok := s.lookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// NormalizeBaseURL trims whitespace and trailing slashes and validates the scheme
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(ErrInvalidBaseURL, err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidBaseURL
	}
	return raw, nil
}

// GetAPIBaseURL returns the backend base URL
func (s *Settings) GetAPIBaseURL() string {
	if v, ok := s.env(EnvAPIBaseURL); ok {
		if normalized, err := NormalizeBaseURL(v); err == nil {
			return normalized
		}
	}
	stored := s.app.Preferences().String(KeyAPIBaseURL)
	if normalized, err := NormalizeBaseURL(stored); err == nil {
		return normalized
	}
	return DefaultAPIBaseURL
}

// SetAPIBaseURL validates and stores the backend base URL
func (s *Settings) SetAPIBaseURL(raw string) error {
	normalized, err := NormalizeBaseURL(raw)
	if err != nil {
		return err
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, normalized)
	return nil
}

// GetPollInterval returns the job status poll interval
func (s *Settings) GetPollInterval() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyPollIntervalMs, DefaultPollIntervalMs)
	if v, ok := s.env(EnvPollIntervalMs); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			ms = parsed
		}
	}
	return time.Duration(clampPollIntervalMs(ms)) * time.Millisecond
}

// SetPollInterval sets the job status poll interval
func (s *Settings) SetPollInterval(d time.Duration) {
	s.app.Preferences().SetInt(KeyPollIntervalMs, clampPollIntervalMs(int(d/time.Millisecond)))
}

func clampPollIntervalMs(ms int) int {
	if ms <= 0 {
		return DefaultPollIntervalMs
	}
	if ms < MinPollIntervalMs {
		return MinPollIntervalMs
	}
	if ms > MaxPollIntervalMs {
		return MaxPollIntervalMs
	}
	return ms
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	if v, ok := s.env(EnvDownloadDir); ok {
		return v
	}
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = os.TempDir()
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetAutoRevealOnComplete returns whether saved files are revealed in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether saved files are revealed in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	if v, ok := s.env(EnvLogLevel); ok {
		return strings.ToLower(v)
	}
	return s.app.Preferences().StringWithFallback(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level string) {
	s.app.Preferences().SetString(KeyLogLevel, strings.ToLower(strings.TrimSpace(level)))
}

// GetAppEnv returns the deployment environment name (development or production)
func (s *Settings) GetAppEnv() string {
	if v, ok := s.env(EnvAppEnv); ok {
		return strings.ToLower(v)
	}
	return DefaultAppEnv
}
