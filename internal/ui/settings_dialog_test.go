package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-remote/internal/config"
)

func newTestSettingsDialog(t *testing.T, onSaved func()) (*SettingsDialog, *config.Settings) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "")
	app := test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	settings := config.NewSettings(app)
	return NewSettingsDialog(settings, NewLocalization(), w, onSaved), settings
}

func TestSettingsDialog_LoadsCurrentValues(t *testing.T) {
	sd, settings := newTestSettingsDialog(t, nil)
	settings.SetLogLevel("warn")
	settings.SetLanguage("ru")

	sd.Show()

	assert.Equal(t, "warn", sd.logLevelSelect.Selected)
	assert.Equal(t, "Русский", sd.languageSelect.Selected)
	assert.Equal(t, config.LogLevels, sd.logLevelSelect.Options)
}

func TestSettingsDialog_SaveStoresLogLevel(t *testing.T) {
	saved := 0
	sd, settings := newTestSettingsDialog(t, func() { saved++ })
	sd.Show()

	sd.logLevelSelect.SetSelected("debug")
	sd.pollIntervalEntry.SetText("750")
	sd.onSave(true)

	require.Equal(t, 1, saved)
	assert.Equal(t, "debug", settings.GetLogLevel())
	assert.Equal(t, int64(750), settings.GetPollInterval().Milliseconds())
}

func TestSettingsDialog_CancelKeepsValues(t *testing.T) {
	saved := 0
	sd, settings := newTestSettingsDialog(t, func() { saved++ })
	sd.Show()

	sd.logLevelSelect.SetSelected("error")
	sd.onSave(false)

	assert.Zero(t, saved)
	assert.Equal(t, config.DefaultLogLevel, settings.GetLogLevel())
}
