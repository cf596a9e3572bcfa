package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// badge is a small pill with bold text on a colored background
type badge struct {
	box  *fyne.Container
	text *canvas.Text
	bg   *canvas.Rectangle
}

func newBadge(text string, bg color.Color) *badge {
	label := canvas.NewText(text, ColorBadgeText)
	label.TextSize = BadgeTextSize
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Alignment = fyne.TextAlignCenter

	rect := canvas.NewRectangle(bg)
	rect.CornerRadius = BadgePadding

	return &badge{
		box:  container.NewStack(rect, container.NewPadded(label)),
		text: label,
		bg:   rect,
	}
}

func (b *badge) set(text string, bg color.Color) {
	b.text.Text = text
	b.bg.FillColor = bg
	b.text.Refresh()
	b.bg.Refresh()
}

func (b *badge) setVisible(visible bool) {
	if visible {
		b.box.Show()
	} else {
		b.box.Hide()
	}
}
