package platform

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// looseString decodes a JSON string or number. Any other value decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		*s = ""
		return nil
	}
	switch t := v.(type) {
	case string:
		*s = looseString(t)
	case json.Number:
		*s = looseString(t.String())
	default:
		*s = ""
	}
	return nil
}

// String returns the trimmed value
func (s looseString) String() string {
	return strings.TrimSpace(string(s))
}

// looseNumber decodes a JSON number or numeric string. Any other value decodes to 0.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		*n = 0
		return nil
	}
	var f float64
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		err = strconv.ErrSyntax
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = looseNumber(f)
	return nil
}

// Float returns the decoded value
func (n looseNumber) Float() float64 {
	return float64(n)
}

// streamList decodes an array of stream entries, skipping elements that are not objects.
// A value that is not an array decodes to an empty list.
type streamList []StreamEntry

func (l *streamList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	entries := make([]StreamEntry, 0, len(raw))
	for _, item := range raw {
		var entry StreamEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	*l = entries
	return nil
}

func decodeLoose(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	err := dec.Decode(&v)
	return v, err
}

// VideoInfoResponse is the body of a successful POST /video-info
type VideoInfoResponse struct {
	Title        looseString `json:"title"`
	Author       looseString `json:"author"`
	ThumbnailURL looseString `json:"thumbnail_url"`
	Views        looseNumber `json:"views"`
	Duration     looseString `json:"duration"`
	License      looseString `json:"license"`
	Streams      streamList  `json:"streams"`
}

// StreamEntry is one element of VideoInfoResponse.Streams
type StreamEntry struct {
	Itag           looseString `json:"itag"`
	Resolution     looseString `json:"resolution"`
	MimeType       looseString `json:"mime_type"`
	FilesizeApprox looseNumber `json:"filesize_approx"`
	Type           looseString `json:"type"` // "progressive", "video", "adaptive" or "audio"
}

// errorResponse is the optional body of a failed request
type errorResponse struct {
	Error looseString `json:"error"`
}

type videoInfoRequest struct {
	URL string `json:"url"`
}

type startDownloadRequest struct {
	URL  string `json:"url"`
	Itag string `json:"itag"`
	Type string `json:"type"`
}

type startDownloadResponse struct {
	JobID looseString `json:"job_id"`
}

type progressResponse struct {
	Status   looseString `json:"status"`
	Progress looseNumber `json:"progress"`
	Error    looseString `json:"error"`
}
