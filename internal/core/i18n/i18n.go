package i18n

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localesFS embed.FS

// Translations holds all translation strings organized by section
type Translations struct {
	Config       ConfigTranslations       `yaml:"config"`
	ConfigReview ConfigReviewTranslations `yaml:"config_review"`
	Help         HelpTranslations         `yaml:"help"`
	Session      SessionTranslations      `yaml:"session"`
	Download     DownloadTranslations     `yaml:"download"`
	Playlist     PlaylistTranslations     `yaml:"playlist"`
	Errors       ErrorTranslations        `yaml:"errors"`
}

type ConfigTranslations struct {
	StepOf          string `yaml:"step_of"`
	Language        string `yaml:"language"`
	LanguageDesc    string `yaml:"language_desc"`
	OutputDir       string `yaml:"output_dir"`
	OutputDirDesc   string `yaml:"output_dir_desc"`
	Quality         string `yaml:"quality"`
	QualityDesc     string `yaml:"quality_desc"`
	AudioFormat     string `yaml:"audio_format"`
	AudioFormatDesc string `yaml:"audio_format_desc"`
	Confirm         string `yaml:"confirm"`
	ConfirmDesc     string `yaml:"confirm_desc"`
	YesSave         string `yaml:"yes_save"`
	NoCancel        string `yaml:"no_cancel"`
	Recommended     string `yaml:"recommended"`
}

type ConfigReviewTranslations struct {
	Language    string `yaml:"language"`
	OutputDir   string `yaml:"output_dir"`
	Quality     string `yaml:"quality"`
	AudioFormat string `yaml:"audio_format"`
}

type HelpTranslations struct {
	Back    string `yaml:"back"`
	Next    string `yaml:"next"`
	Select  string `yaml:"select"`
	Confirm string `yaml:"confirm"`
	Quit    string `yaml:"quit"`
	Cancel  string `yaml:"cancel"`
}

type SessionTranslations struct {
	Credits         string `yaml:"credits"`
	QuitHint        string `yaml:"quit_hint"`
	EnterURL        string `yaml:"enter_url"`
	SelectOption    string `yaml:"select_option"`
	InvalidChoice   string `yaml:"invalid_choice"`
	DownloadAnother string `yaml:"download_another"`
	Title           string `yaml:"title"`
	Channel         string `yaml:"channel"`
	Duration        string `yaml:"duration"`
	Views           string `yaml:"views"`
	BestQuality     string `yaml:"best_quality"`
	MediumQuality   string `yaml:"medium_quality"`
	LowQuality      string `yaml:"low_quality"`
	AudioOnly       string `yaml:"audio_only"`
	Goodbye         string `yaml:"goodbye"`
	Thanks          string `yaml:"thanks"`
	Canceled        string `yaml:"canceled"`
	FFmpegMissing   string `yaml:"ffmpeg_missing"`
	YtdlpMissing    string `yaml:"ytdlp_missing"`
}

type DownloadTranslations struct {
	Analyzing   string `yaml:"analyzing"`
	Downloading string `yaml:"downloading"`
	Processing  string `yaml:"processing"`
	Complete    string `yaml:"complete"`
	Completed   string `yaml:"completed"`
	Failed      string `yaml:"failed"`
	SavedTo     string `yaml:"saved_to"`
	Progress    string `yaml:"progress"`
	Speed       string `yaml:"speed"`
	ETA         string `yaml:"eta"`
	Elapsed     string `yaml:"elapsed"`
	CancelHint  string `yaml:"cancel_hint"`
}

type PlaylistTranslations struct {
	Detected     string `yaml:"detected"`
	Found        string `yaml:"found"`
	BestVideos   string `yaml:"best_videos"`
	MediumVideos string `yaml:"medium_videos"`
	LowVideos    string `yaml:"low_videos"`
	AsAudio      string `yaml:"as_audio"`
	Progress     string `yaml:"progress"`
	Complete     string `yaml:"complete"`
}

type ErrorTranslations struct {
	ConfigNotFound   string `yaml:"config_not_found"`
	InvalidURL       string `yaml:"invalid_url"`
	PrivateVideo     string `yaml:"private_video"`
	Unavailable      string `yaml:"unavailable"`
	FormatNotFound   string `yaml:"format_not_found"`
	SignInRequired   string `yaml:"sign_in_required"`
	Copyright        string `yaml:"copyright"`
	RateLimited      string `yaml:"rate_limited"`
	NetworkError     string `yaml:"network_error"`
	ExtractionFailed string `yaml:"extraction_failed"`
}

var (
	translationsCache = make(map[string]*Translations)
	cacheMutex        sync.RWMutex
	defaultLang       = "en"
)

// SupportedLanguages returns all available language codes
var SupportedLanguages = []struct {
	Code string
	Name string
}{
	{"en", "English"},
	{"zh", "中文"},
}

// GetTranslations returns translations for the specified language
func GetTranslations(lang string) *Translations {
	cacheMutex.RLock()
	if t, ok := translationsCache[lang]; ok {
		cacheMutex.RUnlock()
		return t
	}
	cacheMutex.RUnlock()

	t, err := loadTranslations(lang)
	if err != nil {
		// Fall back to English
		if lang != defaultLang {
			return GetTranslations(defaultLang)
		}
		return &Translations{}
	}

	cacheMutex.Lock()
	translationsCache[lang] = t
	cacheMutex.Unlock()

	return t
}

func loadTranslations(lang string) (*Translations, error) {
	filename := fmt.Sprintf("locales/%s.yml", lang)
	data, err := localesFS.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var t Translations
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// T is a convenience function for getting translations
func T(lang string) *Translations {
	return GetTranslations(lang)
}

// LanguageName returns the display name of a language code
func LanguageName(code string) string {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
