package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-remote/internal/model"
)

// fakeBackend records requests and answers with canned responses
type fakeBackend struct {
	mu         sync.Mutex
	requests   []*http.Request
	bodies     []map[string]interface{}
	status     int
	response   string
	fileBody   []byte
	progressFn func(jobID string) (int, string)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{status: http.StatusOK, response: `{}`}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/video-info", fb.handle)
		r.Post("/start-download", fb.handle)
		r.Get("/progress/{jobID}", func(w http.ResponseWriter, req *http.Request) {
			fb.record(req)
			if fb.progressFn != nil {
				status, body := fb.progressFn(chi.URLParam(req, "jobID"))
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
				return
			}
			fb.write(w)
		})
		r.Get("/get-file/{jobID}", func(w http.ResponseWriter, req *http.Request) {
			fb.record(req)
			if fb.fileBody == nil {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error": "File not ready"}`))
				return
			}
			_, _ = w.Write(fb.fileBody)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return fb, NewClient(ClientOptions{BaseURL: srv.URL + "/api/"})
}

func (fb *fakeBackend) record(req *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var body map[string]interface{}
	_ = json.NewDecoder(req.Body).Decode(&body)
	fb.requests = append(fb.requests, req)
	fb.bodies = append(fb.bodies, body)
}

func (fb *fakeBackend) handle(w http.ResponseWriter, req *http.Request) {
	fb.record(req)
	fb.write(w)
}

func (fb *fakeBackend) write(w http.ResponseWriter) {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(fb.status)
	_, _ = w.Write([]byte(fb.response))
}

func (fb *fakeBackend) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(ClientOptions{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, DefaultUserAgent, c.userAgent)

	c = NewClient(ClientOptions{BaseURL: " http://host:5000/api/ "})
	assert.Equal(t, "http://host:5000/api", c.BaseURL())
}

func TestClient_FetchMeta(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.response = `{
		"title": "T", "author": "A", "thumbnail_url": "", "views": 1000,
		"streams": [
			{"itag": 18, "resolution": "360p", "mime_type": "video/mp4", "filesize_approx": 10485760, "type": "progressive"},
			{"itag": 140, "mime_type": "audio/mp4", "type": "audio"}
		]
	}`

	meta, err := c.FetchMeta(context.Background(), "https://youtu.be/x")
	require.NoError(t, err)

	require.Equal(t, 1, fb.count())
	req := fb.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/video-info", req.URL.Path)
	assert.Equal(t, ContentTypeJSON, req.Header.Get(HeaderContentType))
	assert.Equal(t, DefaultUserAgent, req.Header.Get(HeaderUserAgent))
	_, err = uuid.Parse(req.Header.Get(HeaderRequestID))
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"url": "https://youtu.be/x"}, fb.bodies[0])

	assert.Equal(t, "T", meta.Title)
	require.Len(t, meta.Streams, 2)
	assert.Equal(t, "18", meta.Streams[0].ID)
	assert.True(t, meta.Streams[0].IsProgressive)
	assert.Equal(t, "10.0 MB", meta.Streams[0].ApproxSize)
	assert.Equal(t, model.StreamKindAudio, meta.Streams[1].Kind)
	assert.False(t, meta.Streams[1].IsProgressive)
	assert.Equal(t, model.UnknownValue, meta.Streams[1].ApproxSize)
}

func TestClient_FetchMeta_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"remote detail", http.StatusBadRequest, `{"error": "Video unavailable"}`, "Video unavailable"},
		{"no detail", http.StatusInternalServerError, `{}`, DefaultFetchErrorMessage},
		{"not json", http.StatusBadGateway, `<html>`, DefaultFetchErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.status = tt.status
			fb.response = tt.body

			meta, err := c.FetchMeta(context.Background(), "https://youtu.be/x")
			assert.Nil(t, meta)

			rejected, ok := AsRejectedError(err)
			require.True(t, ok, "expected RejectedError, got %v", err)
			assert.Equal(t, RejectedRemote, rejected.Kind)
			assert.Equal(t, tt.status, rejected.StatusCode)
			assert.Equal(t, tt.expected, rejected.Message)
			assert.Equal(t, tt.expected, ErrorDetail(err))
		})
	}
}

func TestClient_FetchMeta_InvalidBody(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.response = `not json`

	_, err := c.FetchMeta(context.Background(), "https://youtu.be/x")
	rejected, ok := AsRejectedError(err)
	require.True(t, ok)
	assert.Contains(t, rejected.Message, "invalid response")
}

func TestClient_FetchMeta_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(ClientOptions{BaseURL: srv.URL})
	srv.Close()

	_, err := c.FetchMeta(context.Background(), "https://youtu.be/x")
	netErr, ok := AsNetworkError(err)
	require.True(t, ok, "expected NetworkError, got %v", err)
	assert.Equal(t, "POST /video-info", netErr.Op)
	assert.NotEmpty(t, ErrorDetail(err))
}

func TestClient_StartJob(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.response = `{"job_id": "abc123"}`

	jobID, err := c.StartJob(context.Background(), "https://youtu.be/x", "18", model.StreamKindVideo)
	require.NoError(t, err)
	assert.Equal(t, "abc123", jobID)

	require.Equal(t, 1, fb.count())
	assert.Equal(t, "/api/start-download", fb.requests[0].URL.Path)
	assert.Equal(t, map[string]interface{}{
		"url":  "https://youtu.be/x",
		"itag": "18",
		"type": "video",
	}, fb.bodies[0])
}

func TestClient_StartJob_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"remote detail", http.StatusBadRequest, `{"error": "Missing url or itag"}`, "Missing url or itag"},
		{"no detail", http.StatusInternalServerError, ``, DefaultLaunchErrorMessage},
		{"missing job id", http.StatusOK, `{}`, "invalid response: missing job_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.status = tt.status
			fb.response = tt.body

			jobID, err := c.StartJob(context.Background(), "u", "18", model.StreamKindVideo)
			assert.Empty(t, jobID)

			rejected, ok := AsRejectedError(err)
			require.True(t, ok)
			assert.Equal(t, RejectedLaunch, rejected.Kind)
			assert.Equal(t, tt.expected, rejected.Message)
		})
	}
}

func TestClient_JobStatus(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.progressFn = func(jobID string) (int, string) {
		switch jobID {
		case "abc123":
			return http.StatusOK, `{"status": "downloading", "progress": 42.5}`
		case "bad":
			return http.StatusOK, `{"status": "error", "progress": 0, "error": "boom"}`
		case "partial":
			return http.StatusOK, `{"progress": "55"}`
		default:
			return http.StatusNotFound, `{"status": "error", "error": "Job not found"}`
		}
	}

	report, err := c.JobStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, &model.JobReport{Status: "downloading", Progress: 42.5}, report)

	report, err = c.JobStatus(context.Background(), "bad")
	require.NoError(t, err)
	assert.Equal(t, &model.JobReport{Status: "error", Error: "boom"}, report)

	report, err = c.JobStatus(context.Background(), "partial")
	require.NoError(t, err)
	assert.Equal(t, &model.JobReport{Progress: 55}, report)

	_, err = c.JobStatus(context.Background(), "missing")
	rejected, ok := AsRejectedError(err)
	require.True(t, ok)
	assert.Equal(t, RejectedStatus, rejected.Kind)
	assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
	assert.Equal(t, "Job not found", rejected.Message)
}

func TestClient_FileURL(t *testing.T) {
	c := NewClient(ClientOptions{BaseURL: "http://localhost:5000/api"})
	assert.Equal(t, "http://localhost:5000/api/get-file/abc123", c.FileURL("abc123"))
	assert.Equal(t, "http://localhost:5000/api/get-file/a%2Fb", c.FileURL("a/b"))
}

func TestClient_DownloadFile(t *testing.T) {
	fb, c := newFakeBackend(t)

	var buf bytes.Buffer
	_, err := c.DownloadFile(context.Background(), c.FileURL("abc123"), &buf)
	rejected, ok := AsRejectedError(err)
	require.True(t, ok)
	assert.Equal(t, "File not ready", rejected.Message)

	fb.fileBody = []byte("binary-video-data")
	n, err := c.DownloadFile(context.Background(), c.FileURL("abc123"), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(fb.fileBody)), n)
	assert.Equal(t, "binary-video-data", buf.String())
}

func TestClient_ContextCancelled(t *testing.T) {
	_, c := newFakeBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.JobStatus(ctx, "abc123")
	_, ok := AsNetworkError(err)
	assert.True(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_JobStatusIgnoresRequestTimeout(t *testing.T) {
	const delay = 200 * time.Millisecond

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/video-info", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(delay)
			_, _ = w.Write([]byte(`{"title": "T"}`))
		})
		r.Get("/progress/{jobID}", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(delay)
			_, _ = w.Write([]byte(`{"status": "downloading", "progress": 10}`))
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := NewClient(ClientOptions{BaseURL: srv.URL + "/api", Timeout: 50 * time.Millisecond})

	_, err := c.FetchMeta(context.Background(), "https://youtu.be/x")
	_, ok := AsNetworkError(err)
	assert.True(t, ok, "metadata requests keep the client timeout")

	report, err := c.JobStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "downloading", report.Status)
}
