package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-remote/internal/model"
)

// API defaults
const (
	DefaultBaseURL   = "http://localhost:5000/api"
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "yt-remote/1.0"
)

// API paths relative to the base URL
const (
	PathVideoInfo     = "/video-info"
	PathStartDownload = "/start-download"
	PathProgress      = "/progress/"
	PathGetFile       = "/get-file/"
)

// Request headers
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderUserAgent   = "User-Agent"
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	ContentTypeJSON   = "application/json"
)

// maxResponseBytes bounds JSON bodies read from the backend
const maxResponseBytes = 4 << 20

// ClientOptions configures Client
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Logger     *zerolog.Logger
}

// Client talks to the remote download backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger

	// streamClient has no timeout; status polls and file bodies are bound by ctx only
	streamClient *http.Client
}

// NewClient creates a new backend client
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		streamClient: &http.Client{Transport: httpClient.Transport},
		userAgent:    userAgent,
		logger:       logger.With().Str("component", "api_client").Logger(),
	}
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchMeta asks the backend for the metadata of videoURL and adapts it
func (c *Client) FetchMeta(ctx context.Context, videoURL string) (*model.VideoMeta, error) {
	status, body, err := c.doJSON(ctx, c.httpClient, http.MethodPost, PathVideoInfo, videoInfoRequest{URL: videoURL})
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, &RejectedError{
			Kind:       RejectedRemote,
			StatusCode: status,
			Message:    remoteMessage(body, DefaultFetchErrorMessage),
		}
	}

	var raw VideoInfoResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &RejectedError{
			Kind:       RejectedRemote,
			StatusCode: status,
			Message:    errors.Wrap(err, "invalid response").Error(),
		}
	}

	meta := AdaptVideoInfo(&raw)
	c.logger.Debug().
		Str("url", videoURL).
		Int("streams", len(meta.Streams)).
		Msg("Video info fetched")
	return meta, nil
}

// StartJob asks the backend to start a download of one stream and returns the job id
func (c *Client) StartJob(ctx context.Context, videoURL, streamID string, kind model.StreamKind) (string, error) {
	req := startDownloadRequest{URL: videoURL, Itag: streamID, Type: string(kind)}
	status, body, err := c.doJSON(ctx, c.httpClient, http.MethodPost, PathStartDownload, req)
	if err != nil {
		return "", err
	}

	if !isSuccess(status) {
		return "", &RejectedError{
			Kind:       RejectedLaunch,
			StatusCode: status,
			Message:    remoteMessage(body, DefaultLaunchErrorMessage),
		}
	}

	var resp startDownloadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &RejectedError{
			Kind:       RejectedLaunch,
			StatusCode: status,
			Message:    errors.Wrap(err, "invalid response").Error(),
		}
	}

	jobID := resp.JobID.String()
	if jobID == "" {
		return "", &RejectedError{
			Kind:       RejectedLaunch,
			StatusCode: status,
			Message:    "invalid response: missing job_id",
		}
	}

	c.logger.Info().
		Str("job_id", jobID).
		Str("itag", streamID).
		Str("type", string(kind)).
		Msg("Download job started")
	return jobID, nil
}

// JobStatus queries the progress of a job once. Only ctx bounds the request.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*model.JobReport, error) {
	status, body, err := c.doJSON(ctx, c.streamClient, http.MethodGet, PathProgress+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		return nil, &RejectedError{
			Kind:       RejectedStatus,
			StatusCode: status,
			Message:    remoteMessage(body, DefaultStatusErrorMessage),
		}
	}

	var resp progressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RejectedError{
			Kind:       RejectedStatus,
			StatusCode: status,
			Message:    errors.Wrap(err, "invalid response").Error(),
		}
	}

	return &model.JobReport{
		Status:   resp.Status.String(),
		Progress: resp.Progress.Float(),
		Error:    resp.Error.String(),
	}, nil
}

// FileURL returns the retrieval location of a finished job
func (c *Client) FileURL(jobID string) string {
	return c.baseURL + PathGetFile + url.PathEscape(jobID)
}

// DownloadFile streams the body at location into w and returns the number of bytes written
func (c *Client) DownloadFile(ctx context.Context, location string, w io.Writer) (int64, error) {
	req, requestID, err := c.newRequest(ctx, http.MethodGet, location, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return 0, &NetworkError{Op: "GET " + location, Err: errors.Wrap(err, "send request")}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return 0, &RejectedError{
			Kind:       RejectedStatus,
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(body, "Failed to retrieve file"),
		}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &NetworkError{Op: "GET " + location, Err: errors.Wrap(err, "read body")}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int64("bytes", n).
		Msg("File retrieved")
	return n, nil
}

// doJSON sends a request to path relative to the base URL and returns the status and body
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, payload interface{}) (int, []byte, error) {
	op := method + " " + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, &NetworkError{Op: op, Err: errors.Wrap(err, "encode request")}
		}
		body = bytes.NewReader(data)
	}

	req, requestID, err := c.newRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("request_id", requestID).
			Str("op", op).
			Msg("Request failed")
		return 0, nil, &NetworkError{Op: op, Err: errors.Wrap(err, "send request")}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: errors.Wrap(err, "read response")}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")
	return resp.StatusCode, data, nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, "", &NetworkError{Op: method + " " + target, Err: errors.Wrap(err, "build request")}
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderUserAgent, c.userAgent)
	return req, requestID, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// remoteMessage extracts the "error" field of a failure body, falling back to def
func remoteMessage(body []byte, def string) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return def
	}
	if msg := resp.Error.String(); msg != "" {
		return msg
	}
	return def
}
