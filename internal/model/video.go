package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnknownValue is displayed for fields the backend did not provide
const UnknownValue = "unknown"

// DefaultExtension is used when a mime type carries no subtype
const DefaultExtension = "mp4"

// License describes the reuse terms of a video
type License string

const (
	LicenseCreativeCommons License = "cc"
	LicenseStandard        License = "standard"
)

// StreamKind distinguishes video from audio-only options
type StreamKind string

const (
	StreamKindVideo StreamKind = "video"
	StreamKindAudio StreamKind = "audio"
)

// StreamOption is one downloadable encoding of a video
type StreamOption struct {
	ID            string     `json:"id"` // opaque itag
	Resolution    string     `json:"resolution"`
	MimeType      string     `json:"mime_type"`
	ApproxSize    string     `json:"approx_size"` // e.g. "14.5 MB" or "unknown"
	Kind          StreamKind `json:"kind"`
	IsProgressive bool       `json:"is_progressive"` // muxed audio+video
}

// VideoMeta is the normalized view model for a looked-up video
type VideoMeta struct {
	Title        string         `json:"title"`
	Author       string         `json:"author"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Views        int64          `json:"views"`
	Duration     string         `json:"duration"`
	License      License        `json:"license"`
	Streams      []StreamOption `json:"streams"`
}

// Extension returns the file extension derived from the mime subtype
func (o StreamOption) Extension() string {
	_, subtype, found := strings.Cut(o.MimeType, "/")
	if !found {
		return DefaultExtension
	}
	// Drop parameters like "; codecs=..."
	subtype, _, _ = strings.Cut(subtype, ";")
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return DefaultExtension
	}
	return subtype
}

// SuggestedFilename returns the name offered when saving the finished file
func (o StreamOption) SuggestedFilename() string {
	return "video." + o.Extension()
}

// IsVideoOnly returns true for video options that carry no audio track
func (o StreamOption) IsVideoOnly() bool {
	return o.Kind == StreamKindVideo && !o.IsProgressive
}

// Clone returns a deep copy of the meta
func (m *VideoMeta) Clone() *VideoMeta {
	if m == nil {
		return nil
	}
	c := *m
	c.Streams = append([]StreamOption(nil), m.Streams...)
	return &c
}

// HasPlayableStream returns true if at least one option can be downloaded
func (m *VideoMeta) HasPlayableStream() bool {
	return len(m.Streams) > 0
}

// FormatApproxSize renders a byte count in megabytes with one decimal place
func FormatApproxSize(bytes float64) string {
	if bytes <= 0 {
		return UnknownValue
	}
	return fmt.Sprintf("%.1f MB", bytes/(1024*1024))
}

// FormatViews renders a view count with locale-aware digit grouping
func FormatViews(views int64, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", views)
}
