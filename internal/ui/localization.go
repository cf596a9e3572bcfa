package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySearch            = "search"
	KeyEnterURL          = "enter_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyFetchingInfo      = "fetching_info"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyAPIBaseURL        = "api_base_url"
	KeyPollInterval      = "poll_interval"
	KeyAutoReveal        = "auto_reveal"
	KeyLogLevel          = "log_level"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyViews             = "views"
	KeyLicenseCC         = "license_cc"
	KeyLicenseStandard   = "license_standard"
	KeyAvailableStreams  = "available_streams"
	KeyNoStreams         = "no_streams"
	KeyVideoStream       = "video_stream"
	KeyAudioStream       = "audio_stream"
	KeyAudioOnly         = "audio_only"
	KeyNoAudio           = "no_audio"
	KeyDownload          = "download"
	KeyProgressTitle     = "progress_title"
	KeyStatusStarting    = "status_starting"
	KeyStatusDownloading = "status_downloading"
	KeyStatusProcessing  = "status_processing"
	KeyStatusComplete    = "status_complete"
	KeyStatusFailed      = "status_failed"
	KeySaveToDevice      = "save_to_device"
	KeyClose             = "close"
	KeyFileSaved         = "file_saved"
	KeyErrorSavingFile   = "error_saving_file"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Remote",
		KeySearch:            "Search",
		KeyEnterURL:          "Paste a video URL (https://youtube.com/watch?v=...)",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyInvalidURL:        "Invalid URL",
		KeyFetchingInfo:      "Fetching video info...",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyAPIBaseURL:        "Backend URL",
		KeyPollInterval:      "Progress Poll Interval (ms)",
		KeyAutoReveal:        "Show saved file in folder",
		KeyLogLevel:          "Log Level (applies after restart)",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyViews:             "views",
		KeyLicenseCC:         "CC",
		KeyLicenseStandard:   "Copyright",
		KeyAvailableStreams:  "Available Streams",
		KeyNoStreams:         "No downloadable streams",
		KeyVideoStream:       "Video Stream",
		KeyAudioStream:       "Audio Stream",
		KeyAudioOnly:         "Audio",
		KeyNoAudio:           "NO AUDIO",
		KeyDownload:          "Download",
		KeyProgressTitle:     "Processing Download",
		KeyStatusStarting:    "Starting...",
		KeyStatusDownloading: "Downloading Stream...",
		KeyStatusProcessing:  "Merging Audio...",
		KeyStatusComplete:    "Download Ready",
		KeyStatusFailed:      "Download Failed",
		KeySaveToDevice:      "Save to Device",
		KeyClose:             "Close",
		KeyFileSaved:         "Saved to",
		KeyErrorSavingFile:   "Error saving file",
		KeyErrorOpeningFile:  "Error opening file",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Remote",
		KeySearch:            "Найти",
		KeyEnterURL:          "Вставьте URL видео (https://youtube.com/watch?v=...)",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyInvalidURL:        "Неверный URL",
		KeyFetchingInfo:      "Получение информации о видео...",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyAPIBaseURL:        "Адрес сервера",
		KeyPollInterval:      "Интервал опроса (мс)",
		KeyAutoReveal:        "Показать сохранённый файл в папке",
		KeyLogLevel:          "Уровень логов (после перезапуска)",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyViews:             "просмотров",
		KeyLicenseCC:         "CC",
		KeyLicenseStandard:   "Авторское право",
		KeyAvailableStreams:  "Доступные потоки",
		KeyNoStreams:         "Нет доступных потоков",
		KeyVideoStream:       "Видеопоток",
		KeyAudioStream:       "Аудиопоток",
		KeyAudioOnly:         "Аудио",
		KeyNoAudio:           "БЕЗ ЗВУКА",
		KeyDownload:          "Скачать",
		KeyProgressTitle:     "Обработка загрузки",
		KeyStatusStarting:    "Запуск...",
		KeyStatusDownloading: "Загрузка потока...",
		KeyStatusProcessing:  "Сведение аудио...",
		KeyStatusComplete:    "Загрузка готова",
		KeyStatusFailed:      "Ошибка загрузки",
		KeySaveToDevice:      "Сохранить на устройство",
		KeyClose:             "Закрыть",
		KeyFileSaved:         "Сохранено в",
		KeyErrorSavingFile:   "Ошибка сохранения файла",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Remote",
		KeySearch:            "Buscar",
		KeyEnterURL:          "Cole a URL do vídeo (https://youtube.com/watch?v=...)",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyInvalidURL:        "URL inválida",
		KeyFetchingInfo:      "Obtendo informações do vídeo...",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyAPIBaseURL:        "URL do servidor",
		KeyPollInterval:      "Intervalo de consulta (ms)",
		KeyAutoReveal:        "Mostrar arquivo salvo na pasta",
		KeyLogLevel:          "Nível de log (após reiniciar)",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyViews:             "visualizações",
		KeyLicenseCC:         "CC",
		KeyLicenseStandard:   "Direitos autorais",
		KeyAvailableStreams:  "Streams disponíveis",
		KeyNoStreams:         "Nenhum stream disponível",
		KeyVideoStream:       "Stream de vídeo",
		KeyAudioStream:       "Stream de áudio",
		KeyAudioOnly:         "Áudio",
		KeyNoAudio:           "SEM ÁUDIO",
		KeyDownload:          "Baixar",
		KeyProgressTitle:     "Processando download",
		KeyStatusStarting:    "Iniciando...",
		KeyStatusDownloading: "Baixando stream...",
		KeyStatusProcessing:  "Mesclando áudio...",
		KeyStatusComplete:    "Download pronto",
		KeyStatusFailed:      "Falha no download",
		KeySaveToDevice:      "Salvar no dispositivo",
		KeyClose:             "Fechar",
		KeyFileSaved:         "Salvo em",
		KeyErrorSavingFile:   "Erro ao salvar arquivo",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
