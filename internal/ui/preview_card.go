package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-remote/internal/model"
)

// PreviewCard shows the thumbnail and summary of the fetched video
type PreviewCard struct {
	localization *Localization
	thumbnailURL string

	thumbnail    *canvas.Image
	titleLabel   *widget.Label
	authorLabel  *widget.Label
	statsLabel   *widget.Label
	licenseBadge *badge

	content *fyne.Container
}

// NewPreviewCard creates an empty, hidden preview card
func NewPreviewCard(localization *Localization) *PreviewCard {
	p := &PreviewCard{localization: localization}

	p.thumbnail = canvas.NewImageFromResource(nil)
	p.thumbnail.FillMode = canvas.ImageFillContain
	p.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	p.titleLabel = widget.NewLabel("")
	p.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.titleLabel.Wrapping = fyne.TextWrapWord

	p.authorLabel = widget.NewLabel("")
	p.statsLabel = widget.NewLabel("")
	p.licenseBadge = newBadge("", ColorBadgeStandard)

	info := container.NewVBox(
		p.titleLabel,
		p.authorLabel,
		p.statsLabel,
		container.NewHBox(p.licenseBadge.box),
	)
	p.content = container.NewBorder(nil, nil, p.thumbnail, nil, info)
	p.content.Hide()
	return p
}

// Container returns the card's canvas object
func (p *PreviewCard) Container() fyne.CanvasObject {
	return p.content
}

// SetMeta renders meta, or hides the card when meta is nil
func (p *PreviewCard) SetMeta(meta *model.VideoMeta) {
	if meta == nil {
		p.content.Hide()
		return
	}

	p.titleLabel.SetText(meta.Title)
	p.authorLabel.SetText(meta.Author)
	p.statsLabel.SetText(previewStats(meta, p.localization))

	if meta.License == model.LicenseCreativeCommons {
		p.licenseBadge.set(p.localization.GetText(KeyLicenseCC), ColorBadgeCC)
	} else {
		p.licenseBadge.set(p.localization.GetText(KeyLicenseStandard), ColorBadgeStandard)
	}

	p.thumbnail.Resource = nil
	p.thumbnail.File = ""
	p.thumbnail.Image = nil
	p.thumbnailURL = meta.ThumbnailURL
	if uri, err := storage.ParseURI(meta.ThumbnailURL); err == nil && meta.ThumbnailURL != "" {
		p.thumbnail.Show()
		go p.loadThumbnail(meta.ThumbnailURL, uri)
	} else {
		p.thumbnail.Hide()
	}
	p.thumbnail.Refresh()

	p.content.Show()
	p.content.Refresh()
}

// loadThumbnail reads the image off the UI goroutine. A result for a
// thumbnail that has since been replaced is dropped.
func (p *PreviewCard) loadThumbnail(raw string, uri fyne.URI) {
	img := canvas.NewImageFromURI(uri)
	fyne.Do(func() {
		if p.thumbnailURL != raw {
			return
		}
		p.thumbnail.Resource = img.Resource
		p.thumbnail.Image = img.Image
		p.thumbnail.File = img.File
		p.thumbnail.Refresh()
	})
}

// previewStats renders "1,000 views · 03:32"
func previewStats(meta *model.VideoMeta, l *Localization) string {
	views := model.FormatViews(meta.Views, l.GetCurrentLanguage()) + " " + l.GetText(KeyViews)
	return views + MiddleDotSeparator + meta.Duration
}
