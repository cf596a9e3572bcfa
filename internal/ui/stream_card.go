package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-remote/internal/model"
)

// StreamCard shows one downloadable stream option with its download button
type StreamCard struct {
	widget.BaseWidget

	option       model.StreamOption
	localization *Localization

	titleLabel   *widget.Label
	detailLabel  *widget.Label
	tagBadge     *badge
	noAudioBadge *badge
	downloadBtn  *widget.Button

	onDownload func(model.StreamOption)
}

// NewStreamCard creates a card for option. onDownload receives the option when the button is tapped.
func NewStreamCard(option model.StreamOption, localization *Localization, onDownload func(model.StreamOption)) *StreamCard {
	c := &StreamCard{
		option:       option,
		localization: localization,
		onDownload:   onDownload,
	}
	c.ExtendBaseWidget(c)
	c.createUI()
	return c
}

func (c *StreamCard) createUI() {
	c.titleLabel = widget.NewLabel(streamTitle(c.option, c.localization))
	c.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	c.titleLabel.Truncation = fyne.TextTruncateEllipsis

	c.detailLabel = widget.NewLabel(streamDetail(c.option, c.localization))

	c.tagBadge = newBadge(strings.ToUpper(c.option.Extension()), ColorBadgeTag)
	c.noAudioBadge = newBadge(c.localization.GetText(KeyNoAudio), ColorBadgeNoAudio)
	c.noAudioBadge.setVisible(c.option.IsVideoOnly())

	c.downloadBtn = widget.NewButtonWithIcon(c.localization.GetText(KeyDownload), theme.DownloadIcon(), func() {
		if c.onDownload != nil {
			c.onDownload(c.option)
		}
	})
	c.downloadBtn.Importance = widget.HighImportance
}

// Option returns the stream option shown by the card
func (c *StreamCard) Option() model.StreamOption {
	return c.option
}

// SetEnabled enables or disables the download button
func (c *StreamCard) SetEnabled(enabled bool) {
	if enabled {
		c.downloadBtn.Enable()
	} else {
		c.downloadBtn.Disable()
	}
}

// MinSize keeps cards readable in the grid
func (c *StreamCard) MinSize() fyne.Size {
	size := c.BaseWidget.MinSize()
	return fyne.NewSize(fyne.Max(size.Width, StreamCardMinWidth), fyne.Max(size.Height, StreamCardHeight))
}

// CreateRenderer implements fyne.Widget
func (c *StreamCard) CreateRenderer() fyne.WidgetRenderer {
	badges := container.NewHBox(c.noAudioBadge.box, c.tagBadge.box)
	header := container.NewBorder(nil, nil, nil, badges, c.titleLabel)
	content := container.NewVBox(header, c.detailLabel, c.downloadBtn)

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = theme.InputRadiusSize()

	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewPadded(content)))
}

// streamTitle is the resolution for video streams and a plain label for audio
func streamTitle(option model.StreamOption, l *Localization) string {
	if option.Kind == model.StreamKindAudio {
		return IconMusic + " " + l.GetText(KeyAudioOnly)
	}
	if option.Resolution == "" {
		return IconVideo + " " + DashPlaceholder
	}
	return IconVideo + " " + option.Resolution
}

// streamDetail renders "<kind> · <size>"
func streamDetail(option model.StreamOption, l *Localization) string {
	kind := l.GetText(KeyVideoStream)
	if option.Kind == model.StreamKindAudio {
		kind = l.GetText(KeyAudioStream)
	}
	return kind + MiddleDotSeparator + option.ApproxSize
}
