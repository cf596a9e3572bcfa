package platform

import (
	"math"
	"strconv"
	"strings"

	"github.com/ytget/yt-remote/internal/model"
)

// Remote stream types
const (
	StreamTypeProgressive = "progressive"
	StreamTypeAudio       = "audio"
)

// Remote license values recognized as Creative Commons (compared case-insensitively)
var creativeCommonsLicenses = []string{"cc", "creative_commons", "creativecommon", "creative commons"}

// AdaptVideoInfo converts a raw metadata payload into the strict view model.
// It never fails: missing or malformed fields fall back to defaults.
func AdaptVideoInfo(raw *VideoInfoResponse) *model.VideoMeta {
	meta := &model.VideoMeta{
		Duration: model.UnknownValue,
		License:  model.LicenseStandard,
		Streams:  []model.StreamOption{},
	}
	if raw == nil {
		return meta
	}

	meta.Title = raw.Title.String()
	meta.Author = raw.Author.String()
	meta.ThumbnailURL = raw.ThumbnailURL.String()
	meta.Views = adaptViews(raw.Views.Float())
	meta.Duration = adaptDuration(raw.Duration.String())
	meta.License = adaptLicense(raw.License.String())

	for _, entry := range raw.Streams {
		meta.Streams = append(meta.Streams, adaptStream(entry))
	}

	return meta
}

func adaptStream(entry StreamEntry) model.StreamOption {
	rawType := strings.ToLower(entry.Type.String())

	kind := model.StreamKindVideo
	if rawType == StreamTypeAudio {
		kind = model.StreamKindAudio
	}

	return model.StreamOption{
		ID:            entry.Itag.String(),
		Resolution:    entry.Resolution.String(),
		MimeType:      entry.MimeType.String(),
		ApproxSize:    model.FormatApproxSize(entry.FilesizeApprox.Float()),
		Kind:          kind,
		IsProgressive: kind == model.StreamKindVideo && rawType == StreamTypeProgressive,
	}
}

func adaptViews(v float64) int64 {
	if v <= 0 || v > math.MaxInt64 {
		return 0
	}
	return int64(v)
}

// adaptDuration renders numeric seconds as a clock string and passes any other
// non-empty value through untouched.
func adaptDuration(s string) string {
	if s == "" {
		return model.UnknownValue
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds > math.MaxInt32 {
		return model.UnknownValue
	}
	return model.FormatDuration(int(seconds))
}

func adaptLicense(s string) model.License {
	s = strings.ToLower(s)
	for _, cc := range creativeCommonsLicenses {
		if s == cc {
			return model.LicenseCreativeCommons
		}
	}
	return model.LicenseStandard
}
