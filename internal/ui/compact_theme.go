package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactSizes overrides the default theme sizes
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       12,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  14,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     3,
	theme.SizeNameSelectionRadius: 2,
}

// CompactTheme is the default theme with tighter spacing and fixed status colors
type CompactTheme struct {
	base fyne.Theme
}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return ColorBadgeCC
	case theme.ColorNameError:
		return ColorBadgeNoAudio
	case theme.ColorNamePrimary:
		return ColorBadgeTag
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return t.base.Size(name)
}
