package model

import "strings"

// JobStatus represents the status of a remote download job
type JobStatus string

const (
	// JobStatusInitializing means the job id is known but no poll response arrived yet
	JobStatusInitializing JobStatus = "initializing"

	// JobStatusDownloading means the backend is fetching the stream
	JobStatusDownloading JobStatus = "downloading"

	// JobStatusProcessing means the backend is merging or transcoding
	JobStatusProcessing JobStatus = "processing"

	// JobStatusComplete means the file is ready for retrieval
	JobStatusComplete JobStatus = "complete"

	// JobStatusError means the job failed on the backend
	JobStatusError JobStatus = "error"
)

// transitions lists the allowed next states for every non-terminal state.
var transitions = map[JobStatus][]JobStatus{
	JobStatusInitializing: {JobStatusDownloading, JobStatusProcessing, JobStatusError},
	JobStatusDownloading:  {JobStatusProcessing, JobStatusError},
	JobStatusProcessing:   {JobStatusComplete, JobStatusError},
}

// ParseJobStatus maps a remote status string to a JobStatus.
// Unknown values map to JobStatusError so an invalid state never propagates.
func ParseJobStatus(s string) JobStatus {
	switch status := JobStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case JobStatusInitializing, JobStatusDownloading, JobStatusProcessing, JobStatusComplete, JobStatusError:
		return status
	default:
		return JobStatusError
	}
}

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsTerminal returns true if no further transition can occur (complete or error)
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusComplete || js == JobStatusError
}

// IsActive returns true while the job is still being worked on by the backend
func (js JobStatus) IsActive() bool {
	return js == JobStatusInitializing || js == JobStatusDownloading || js == JobStatusProcessing
}

// CanTransitionTo reports whether next is a legal successor of js.
// Staying in the same non-terminal state is always allowed.
func (js JobStatus) CanTransitionTo(next JobStatus) bool {
	if js.IsTerminal() {
		return false
	}
	if js == next {
		return true
	}
	for _, allowed := range transitions[js] {
		if allowed == next {
			return true
		}
	}
	return false
}
