package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-remote/internal/model"
)

func newTestProgressDialog(t *testing.T, onSave, onClose func()) *ProgressDialog {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewProgressDialog(w, NewLocalization(), onSave, onClose)
}

func TestStatusText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		status model.JobStatus
		want   string
	}{
		{model.JobStatusInitializing, "Starting..."},
		{model.JobStatusDownloading, "Downloading Stream..."},
		{model.JobStatusProcessing, "Merging Audio..."},
		{model.JobStatusComplete, "Download Ready"},
		{model.JobStatusError, "Download Failed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, statusText(tt.status, l))
		})
	}
}

func TestProgressDialog_Update(t *testing.T) {
	p := newTestProgressDialog(t, nil, nil)

	job := model.NewJob("video.mp4")
	p.Update(job, "")
	assert.Equal(t, "Starting...", p.statusLabel.Text)
	assert.Equal(t, "video.mp4", p.fileLabel.Text)
	assert.True(t, p.saveBtn.Disabled())

	job.ID = "abc123"
	job.Status = model.JobStatusDownloading
	job.Progress = 42.4
	p.Update(job, "")
	assert.Equal(t, "Downloading Stream...", p.statusLabel.Text)
	assert.Equal(t, float64(42), p.progressBar.Value)
	assert.True(t, p.saveBtn.Disabled())

	job.Status = model.JobStatusComplete
	job.Progress = 100
	job.ResultLocation = "http://localhost:5000/api/get-file/abc123"
	p.Update(job, "")
	assert.Equal(t, "Download Ready", p.statusLabel.Text)
	assert.False(t, p.saveBtn.Disabled())
	assert.False(t, p.errorLabel.Visible())
}

func TestProgressDialog_UpdateError(t *testing.T) {
	p := newTestProgressDialog(t, nil, nil)

	job := model.NewJob("video.mp4")
	job.ID = "abc123"
	job.Status = model.JobStatusError
	p.Update(job, "Download failed. Details: ffmpeg exited")

	assert.Equal(t, "Download Failed", p.statusLabel.Text)
	assert.True(t, p.errorLabel.Visible())
	assert.Equal(t, "Download failed. Details: ffmpeg exited", p.errorLabel.Text)
	assert.True(t, p.saveBtn.Disabled())
}

func TestProgressDialog_Buttons(t *testing.T) {
	var saved, closed int
	p := newTestProgressDialog(t, func() { saved++ }, func() { closed++ })

	job := model.NewJob("video.mp4")
	job.ID = "abc123"
	job.Status = model.JobStatusComplete
	job.ResultLocation = "http://localhost:5000/api/get-file/abc123"
	p.Update(job, "")

	test.Tap(p.saveBtn)
	test.Tap(p.closeBtn)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, closed)
}

func TestProgressDialog_ShowHide(t *testing.T) {
	p := newTestProgressDialog(t, nil, nil)

	assert.False(t, p.Visible())
	p.Show()
	p.Show()
	assert.True(t, p.Visible())
	p.Hide()
	assert.False(t, p.Visible())
}
