package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-remote/internal/config"
)

// SettingsDialog edits the persisted client settings
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	apiURLEntry       *widget.Entry
	pollIntervalEntry *widget.Entry
	downloadDirEntry  *widget.Entry
	languageSelect    *widget.Select
	logLevelSelect    *widget.Select
	autoRevealCheck   *widget.Check

	// language display name -> code
	languageCodes map[string]string

	onSaved func()
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after valid settings were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		languageCodes: make(map[string]string),
		onSaved:       onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)
	sd.apiURLEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := config.NormalizeBaseURL(s)
		return err
	}

	sd.pollIntervalEntry = widget.NewEntry()
	sd.pollIntervalEntry.SetPlaceHolder(strconv.Itoa(config.DefaultPollIntervalMs))

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	names := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.logLevelSelect = widget.NewSelect(config.LogLevels, nil)

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyAPIBaseURL), sd.apiURLEntry),
		widget.NewFormItem(l.GetText(KeyPollInterval), sd.pollIntervalEntry),
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(l.GetText(KeyLogLevel), sd.logLevelSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.pollIntervalEntry.SetText(strconv.FormatInt(sd.settings.GetPollInterval().Milliseconds(), 10))
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if raw := strings.TrimSpace(sd.apiURLEntry.Text); raw != "" {
		if err := sd.settings.SetAPIBaseURL(raw); err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
	}

	if ms, err := strconv.Atoi(strings.TrimSpace(sd.pollIntervalEntry.Text)); err == nil {
		sd.settings.SetPollInterval(time.Duration(ms) * time.Millisecond)
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if level := sd.logLevelSelect.Selected; level != "" {
		sd.settings.SetLogLevel(level)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
