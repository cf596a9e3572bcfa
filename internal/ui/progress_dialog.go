package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-remote/internal/model"
)

// ProgressDialog presents the active job: status line, progress bar and
// the save action once the file is ready.
type ProgressDialog struct {
	localization *Localization
	dialog       dialog.Dialog
	visible      bool

	statusLabel *widget.Label
	fileLabel   *widget.Label
	errorLabel  *widget.Label
	progressBar *widget.ProgressBar
	saveBtn     *widget.Button
	closeBtn    *widget.Button

	onSave  func()
	onClose func()
}

// NewProgressDialog builds the dialog for window. onSave runs when the user
// asks for the finished file, onClose when the dialog is dismissed.
func NewProgressDialog(window fyne.Window, localization *Localization, onSave, onClose func()) *ProgressDialog {
	p := &ProgressDialog{
		localization: localization,
		onSave:       onSave,
		onClose:      onClose,
	}

	p.statusLabel = widget.NewLabel(localization.GetText(KeyStatusStarting))
	p.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.fileLabel = widget.NewLabel("")
	p.fileLabel.Truncation = fyne.TextTruncateEllipsis
	p.errorLabel = widget.NewLabel("")
	p.errorLabel.Wrapping = fyne.TextWrapWord
	p.errorLabel.Importance = widget.DangerImportance
	p.errorLabel.Hide()
	p.progressBar = widget.NewProgressBar()
	p.progressBar.Max = 100

	p.saveBtn = widget.NewButtonWithIcon(localization.GetText(KeySaveToDevice), theme.DocumentSaveIcon(), func() {
		if p.onSave != nil {
			p.onSave()
		}
	})
	p.saveBtn.Importance = widget.HighImportance
	p.saveBtn.Disable()

	p.closeBtn = widget.NewButton(localization.GetText(KeyClose), func() {
		if p.onClose != nil {
			p.onClose()
		}
	})

	content := container.NewVBox(
		p.statusLabel,
		p.fileLabel,
		p.progressBar,
		p.errorLabel,
		container.NewHBox(p.saveBtn, p.closeBtn),
	)

	p.dialog = dialog.NewCustomWithoutButtons(localization.GetText(KeyProgressTitle), content, window)
	p.dialog.Resize(fyne.NewSize(ProgressDialogWidth, ProgressDialogHeight))
	return p
}

// Show opens the dialog if it is not already visible
func (p *ProgressDialog) Show() {
	if p.visible {
		return
	}
	p.visible = true
	p.dialog.Show()
}

// Hide closes the dialog without running onClose
func (p *ProgressDialog) Hide() {
	if !p.visible {
		return
	}
	p.visible = false
	p.dialog.Hide()
}

// Visible reports whether the dialog is showing
func (p *ProgressDialog) Visible() bool {
	return p.visible
}

// Update renders job and, on failure, lastError
func (p *ProgressDialog) Update(job *model.Job, lastError string) {
	if job == nil {
		p.statusLabel.SetText(p.localization.GetText(KeyStatusStarting))
		p.fileLabel.SetText("")
		p.progressBar.SetValue(0)
		p.saveBtn.Disable()
		p.errorLabel.Hide()
		return
	}

	p.statusLabel.SetText(statusText(job.Status, p.localization))
	p.fileLabel.SetText(job.Filename)
	p.progressBar.SetValue(float64(job.Percent()))

	if job.Status == model.JobStatusComplete && job.HasResult() {
		p.saveBtn.Enable()
	} else {
		p.saveBtn.Disable()
	}

	if job.Status == model.JobStatusError && lastError != "" {
		p.errorLabel.SetText(lastError)
		p.errorLabel.Show()
	} else {
		p.errorLabel.Hide()
	}
}

// statusText maps a job status to its progress line
func statusText(status model.JobStatus, l *Localization) string {
	switch status {
	case model.JobStatusDownloading:
		return l.GetText(KeyStatusDownloading)
	case model.JobStatusProcessing:
		return l.GetText(KeyStatusProcessing)
	case model.JobStatusComplete:
		return l.GetText(KeyStatusComplete)
	case model.JobStatusError:
		return l.GetText(KeyStatusFailed)
	default:
		return l.GetText(KeyStatusStarting)
	}
}

// RefreshTexts re-applies translated button labels after a language change
func (p *ProgressDialog) RefreshTexts() {
	p.saveBtn.SetText(p.localization.GetText(KeySaveToDevice))
	p.closeBtn.SetText(p.localization.GetText(KeyClose))
}
