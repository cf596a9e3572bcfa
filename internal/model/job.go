package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrJobFailed is reported when the backend moved a job to the error state
var ErrJobFailed = errors.New("job failed")

// Job represents a single remote download job tracked by the client
type Job struct {
	ID             string    // backend job id, empty while the launch request is in flight
	Status         JobStatus // current state
	Progress       float64   // 0 to 100, as reported by the backend
	ResultLocation string    // file retrieval URL once complete
	Filename       string    // suggested file name for saving
	Error          string    // backend error detail if any
	StartedAt      time.Time // when download was requested
	FinishedAt     time.Time // when a terminal state was reached
}

// JobReport is a single answer of the backend to a progress query
type JobReport struct {
	Status   string  // raw status value, empty when the backend omitted it
	Progress float64 // 0 when omitted
	Error    string  // failure detail, if any
}

// NewJob creates a placeholder job in the initializing state
func NewJob(filename string) *Job {
	return &Job{
		Status:    JobStatusInitializing,
		Filename:  filename,
		StartedAt: time.Now(),
	}
}

// IsPlaceholder returns true while no backend id has been assigned
func (j *Job) IsPlaceholder() bool {
	return j.ID == ""
}

// HasResult returns true if the finished file can be retrieved
func (j *Job) HasResult() bool {
	return j.Status == JobStatusComplete && j.ResultLocation != ""
}

// Percent returns progress rounded to a whole percentage for display
func (j *Job) Percent() int {
	return int(j.Progress + 0.5)
}

// Err returns an error wrapping ErrJobFailed when the job failed, nil otherwise
func (j *Job) Err() error {
	if j.Status != JobStatusError {
		return nil
	}
	if j.Error != "" {
		return fmt.Errorf("%w: %s", ErrJobFailed, j.Error)
	}
	return ErrJobFailed
}

// Clone returns a copy safe to hand to other goroutines
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	return &c
}

// FormatDuration returns seconds formatted as mm:ss or hh:mm:ss, or "unknown" if not positive
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return UnknownValue
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if hours > 0 {
		b.WriteString(fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%02d:%02d", minutes, secs))
	return b.String()
}
