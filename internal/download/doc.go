package download

// Package download drives remote download jobs. Session owns the state shown by
// the UI (current URL, fetched metadata, active job, last error) and is the only
// place where a Poller gets created, so at most one job is polled at a time.
// Poller runs the status state machine of a single job on a fixed cadence.
