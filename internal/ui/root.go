package ui

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-remote/internal/config"
	"github.com/ytget/yt-remote/internal/download"
	"github.com/ytget/yt-remote/internal/model"
	"github.com/ytget/yt-remote/internal/platform"
)

// errURLScheme is returned by validateURL for non-web URLs
var errURLScheme = errors.New("URL must start with http:// or https://")

// RootUI represents the main window: URL bar, video preview, stream cards
// and the progress dialog. All fields are touched on the Fyne goroutine only.
type RootUI struct {
	window       fyne.Window
	session      *download.Session
	settings     *config.Settings
	localization *Localization
	logger       zerolog.Logger

	// ctx is cancelled when the window closes, aborting pending requests
	ctx    context.Context
	cancel context.CancelFunc

	// actions runs session actions in the order the user triggered them
	actions *download.ActionQueue

	urlEntry  *widget.Entry
	searchBtn *widget.Button

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	preview      *PreviewCard
	streamsLabel *widget.Label
	streamGrid   *fyne.Container
	cards        []*StreamCard

	progress *ProgressDialog

	shownMeta *model.VideoMeta
	last      download.Snapshot
}

// NewRootUI builds the main window content and subscribes it to session
func NewRootUI(window fyne.Window, session *download.Session, settings *config.Settings, logger zerolog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		session:      session,
		settings:     settings,
		localization: localization,
		logger:       logger.With().Str("component", "ui").Logger(),
		ctx:          ctx,
		cancel:       cancel,
		actions:      download.NewActionQueue(),
	}
	ui.actions.Start()

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	session.Subscribe(func(snap download.Snapshot) {
		fyne.Do(func() { ui.render(snap) })
	})
	window.SetOnClosed(ui.Shutdown)
	ui.render(session.Snapshot())

	ui.logger.Debug().Msg("UI setup completed")
	return ui
}

// Shutdown aborts requests started from the window and waits for queued actions to finish
func (ui *RootUI) Shutdown() {
	ui.cancel()
	ui.session.AbortLaunch()
	ui.actions.Stop()
}

// dispatch queues a session action behind the ones already triggered
func (ui *RootUI) dispatch(name string, action func() error) {
	queued := ui.actions.Submit(func() {
		if err := action(); err != nil {
			ui.logger.Debug().Err(err).Str("action", name).Msg("Action finished with error")
		}
	})
	if !queued {
		ui.logger.Debug().Str("action", name).Msg("Action dropped after shutdown")
	}
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onSearchClick()
	}

	ui.searchBtn = widget.NewButton(ui.localization.GetText(KeySearch), ui.onSearchClick)
	ui.searchBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, ui.searchBtn, ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(topPanel, ui.notificationContainer)

	ui.preview = NewPreviewCard(ui.localization)
	ui.streamsLabel = widget.NewLabel(ui.localization.GetText(KeyAvailableStreams))
	ui.streamsLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.streamsLabel.Hide()
	ui.streamGrid = container.NewGridWrap(fyne.NewSize(StreamCardMinWidth, StreamCardHeight))

	body := container.NewVScroll(container.NewVBox(
		ui.preview.Container(),
		ui.streamsLabel,
		ui.streamGrid,
	))

	ui.progress = NewProgressDialog(ui.window, ui.localization, ui.onSaveResult, ui.onCloseProgress)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, body))
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	options := ui.settings.GetLanguageOptions()
	codes := make([]string, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	current := ui.settings.GetLanguage()
	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(options[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = current == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts re-renders every translated string
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.searchBtn.SetText(ui.localization.GetText(KeySearch))
	ui.progress.RefreshTexts()

	// force the preview and cards to be rebuilt
	ui.shownMeta = nil
	ui.render(ui.last)
}

// validateURL accepts empty input and absolute http(s) URLs
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errURLScheme
	}
	if parsedURL.Host == "" {
		return errors.Errorf("URL %q has no host", input)
	}
	return nil
}

func (ui *RootUI) onSearchClick() {
	urlText := cleanURL(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}
	if err := validateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	ui.logger.Debug().Str("url", urlText).Msg("Search requested")
	ui.dispatch("search", func() error {
		return ui.session.Search(ui.ctx, urlText)
	})
}

// cleanURL strips line breaks pasted along with the URL
func cleanURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

func (ui *RootUI) onDownload(option model.StreamOption) {
	ui.logger.Debug().Str("itag", option.ID).Str("kind", string(option.Kind)).Msg("Download requested")
	ui.dispatch("download", func() error {
		return ui.session.Download(ui.ctx, option)
	})
}

// onCloseProgress aborts a launch that is already running, then queues the
// teardown behind any action triggered before the close.
func (ui *RootUI) onCloseProgress() {
	ui.progress.Hide()
	ui.session.AbortLaunch()
	ui.dispatch("close_progress", func() error {
		ui.session.CloseProgress()
		return nil
	})
}

func (ui *RootUI) onSaveResult() {
	autoReveal := ui.settings.GetAutoRevealOnComplete()
	go func() {
		path, err := ui.session.SaveResult(ui.ctx)
		fyne.Do(func() {
			if err != nil {
				ui.logger.Error().Err(err).Msg("Saving file failed")
				dialog.ShowError(errors.Wrap(err, ui.localization.GetText(KeyErrorSavingFile)), ui.window)
				return
			}
			ui.showNotification(ui.localization.GetText(KeyFileSaved)+" "+path, false)
			if autoReveal {
				ui.revealFile(path)
			}
		})
	}()
}

func (ui *RootUI) revealFile(path string) {
	if err := platform.OpenFileInManager(path); err != nil {
		ui.logger.Warn().Err(err).Str("path", path).Msg("Failed to reveal file")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes saved settings into the running session.
// The backend URL is read once at startup.
func (ui *RootUI) applySettings() {
	ui.session.SetPollInterval(ui.settings.GetPollInterval())
	ui.session.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}

// render brings the window in line with snap
func (ui *RootUI) render(snap download.Snapshot) {
	ui.last = snap

	switch {
	case snap.Loading:
		ui.showNotification(ui.localization.GetText(KeyFetchingInfo), true)
	case snap.LastError != "" && !snap.ProgressOpen:
		ui.showNotification(IconError+" "+snap.LastError, false)
	case snap.LastError == "" && ui.notificationSpinner.Visible():
		ui.hideNotification()
	}

	if snap.Loading {
		ui.searchBtn.Disable()
	} else {
		ui.searchBtn.Enable()
	}

	if !sameMeta(ui.shownMeta, snap.Meta) {
		ui.shownMeta = snap.Meta
		ui.preview.SetMeta(snap.Meta)
		ui.rebuildStreamCards(snap.Meta)
	}
	for _, card := range ui.cards {
		card.SetEnabled(!snap.Loading)
	}

	if snap.ProgressOpen {
		ui.progress.Update(snap.ActiveJob, snap.LastError)
		ui.progress.Show()
	} else {
		ui.progress.Hide()
	}
}

func (ui *RootUI) rebuildStreamCards(meta *model.VideoMeta) {
	ui.cards = nil
	ui.streamGrid.RemoveAll()

	if meta == nil {
		ui.streamsLabel.Hide()
		return
	}

	ui.streamsLabel.Show()
	if len(meta.Streams) == 0 {
		ui.streamsLabel.SetText(ui.localization.GetText(KeyNoStreams))
		return
	}
	ui.streamsLabel.SetText(ui.localization.GetText(KeyAvailableStreams))

	for _, option := range meta.Streams {
		card := NewStreamCard(option, ui.localization, ui.onDownload)
		ui.cards = append(ui.cards, card)
		ui.streamGrid.Add(card)
	}
	ui.streamGrid.Refresh()
}

// showNotification displays a message in the panel under the URL input.
// When spinning is true a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// sameMeta compares the fields the window renders
func sameMeta(a, b *model.VideoMeta) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Title != b.Title || a.Author != b.Author || a.ThumbnailURL != b.ThumbnailURL ||
		a.Views != b.Views || a.Duration != b.Duration || a.License != b.License ||
		len(a.Streams) != len(b.Streams) {
		return false
	}
	for i := range a.Streams {
		if a.Streams[i] != b.Streams[i] {
			return false
		}
	}
	return true
}
