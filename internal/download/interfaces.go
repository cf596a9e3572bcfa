package download

import (
	"context"
	"io"

	"github.com/ytget/yt-remote/internal/model"
)

// MetaFetcher fetches and adapts video metadata
type MetaFetcher interface {
	FetchMeta(ctx context.Context, url string) (*model.VideoMeta, error)
}

// JobLauncher starts a remote download job and returns its id
type JobLauncher interface {
	StartJob(ctx context.Context, url, streamID string, kind model.StreamKind) (string, error)
}

// StatusSource answers progress queries for a job.
type StatusSource interface {
	JobStatus(ctx context.Context, jobID string) (*model.JobReport, error)

	// FileURL returns the retrieval location of a finished job
	FileURL(jobID string) string
}

// FileFetcher copies a finished file into w
type FileFetcher interface {
	DownloadFile(ctx context.Context, location string, w io.Writer) (int64, error)
}

// Backend is everything the session needs from the remote service.
// *platform.Client implements it.
type Backend interface {
	MetaFetcher
	JobLauncher
	StatusSource
	FileFetcher
}
