package main

import (
	"io/fs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/ytget/yt-remote/internal/config"
	"github.com/ytget/yt-remote/internal/download"
	"github.com/ytget/yt-remote/internal/logging"
	"github.com/ytget/yt-remote/internal/platform"
	"github.com/ytget/yt-remote/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-remote"
	AppName = "YT Remote"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	// .env is optional; real environment variables win
	envErr := godotenv.Load()

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	logger := logging.New(settings.GetAppEnv(), settings.GetLogLevel())
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn().Err(envErr).Msg("Failed to load .env")
	}
	logger.Info().Str("version", version).Msg("YT Remote starting")

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warn().Err(err).Str("dir", downloadsDir).Msg("Failed to ensure downloads dir")
	}

	client := platform.NewClient(platform.ClientOptions{
		BaseURL: settings.GetAPIBaseURL(),
		Logger:  &logger,
	})
	session := download.NewSession(client, download.SessionOptions{
		PollInterval: settings.GetPollInterval(),
		DownloadDir:  downloadsDir,
		Logger:       &logger,
	})
	defer session.Close()

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	ui.NewRootUI(myWindow, session, settings, logger)

	logger.Info().Str("api", client.BaseURL()).Msg("Backend configured")
	myWindow.ShowAndRun()
}
