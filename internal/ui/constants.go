package ui

import (
	"image/color"
	"time"
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconSearch   = "🔍"
	IconClose    = "×"
	IconError    = "❌"
	IconVideo    = "🎬"
	IconMusic    = "🎵"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	ThumbnailWidth  float32 = 240
	ThumbnailHeight float32 = 135

	StreamCardMinWidth float32 = 220
	StreamCardHeight   float32 = 110

	ProgressDialogWidth  float32 = 420
	ProgressDialogHeight float32 = 200

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420

	LogoSize float32 = 32

	BadgeTextSize float32 = 10
	BadgePadding  float32 = 4
)

// Badge colors
var (
	ColorBadgeNoAudio  = color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	ColorBadgeCC       = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	ColorBadgeStandard = color.NRGBA{R: 97, G: 97, B: 97, A: 255}
	ColorBadgeTag      = color.NRGBA{R: 25, G: 118, B: 210, A: 255}
	ColorBadgeText     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Tooltip behavior
const (
	TooltipAutoHide = 1500 * time.Millisecond
)
