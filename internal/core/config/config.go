package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	LogFileName    = "ytdl.log"
	AppDirName     = "ytdl"
)

// Subdirectories created under the output directory.
const (
	VideosDirName    = "Videos"
	AudiosDirName    = "Audios"
	PlaylistsDirName = "Playlists"
)

// ConfigDir returns the standard config directory for ytdl.
// Windows: %APPDATA%\ytdl\
// macOS/Linux: ~/.config/ytdl/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/ytdl/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LogPath returns the path of the debug log written with --debug.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

type Config struct {
	// Language for prompts and progress output ("en", "zh")
	Language string `yaml:"language,omitempty"`

	// Base download directory; Videos/, Audios/ and Playlists/ live under it
	OutputDir string `yaml:"output_dir,omitempty"`

	// Default preset offered for single videos (best, medium, low, audio)
	Quality string `yaml:"quality,omitempty"`

	// Default preset offered for playlists
	PlaylistQuality string `yaml:"playlist_quality,omitempty"`

	// Codec and bitrate used when extracting audio
	AudioFormat  string `yaml:"audio_format,omitempty"`
	AudioQuality string `yaml:"audio_quality,omitempty"`

	// Container used when merging separate video and audio streams
	MergeFormat string `yaml:"merge_format,omitempty"`

	// AutoInstall lets ytdl fetch a managed yt-dlp binary when none is on PATH
	AutoInstall bool `yaml:"auto_install"`
}

// Dirs holds the fixed output directories.
type Dirs struct {
	Base      string
	Videos    string
	Audios    string
	Playlists string
}

// All returns every directory in creation order.
func (d Dirs) All() []string {
	return []string{d.Base, d.Videos, d.Audios, d.Playlists}
}

// Dirs resolves the output directories for this config.
func (c *Config) Dirs() Dirs {
	base := c.OutputDir
	if base == "" {
		base = DefaultDownloadDir()
	}
	return Dirs{
		Base:      base,
		Videos:    filepath.Join(base, VideosDirName),
		Audios:    filepath.Join(base, AudiosDirName),
		Playlists: filepath.Join(base, PlaylistsDirName),
	}
}

// EnsureDirs creates the base directory and its three subdirectories.
func (c *Config) EnsureDirs() (Dirs, error) {
	dirs := c.Dirs()
	for _, dir := range dirs.All() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return dirs, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return dirs, nil
}

// Set updates a single field by its YAML key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "language":
		c.Language = value
	case "output_dir":
		c.OutputDir = expandPath(value)
	case "quality":
		c.Quality = value
	case "playlist_quality":
		c.PlaylistQuality = value
	case "audio_format":
		c.AudioFormat = value
	case "audio_quality":
		c.AudioQuality = value
	case "merge_format":
		c.MergeFormat = value
	case "auto_install":
		switch strings.ToLower(value) {
		case "true", "yes", "1", "on":
			c.AutoInstall = true
		case "false", "no", "0", "off":
			c.AutoInstall = false
		default:
			return fmt.Errorf("invalid boolean for auto_install: %q", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// DefaultDownloadDir returns the default download directory, ~/Downloads/ytdl
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "Downloads", AppDirName)
	}
	return filepath.Join(home, "Downloads", AppDirName)
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Language:        "en",
		OutputDir:       DefaultDownloadDir(),
		Quality:         "best",
		PlaylistQuality: "medium",
		AudioFormat:     "mp3",
		AudioQuality:    "192",
		MergeFormat:     "mp4",
		AutoInstall:     true,
	}
}

// applyDefaults fills fields left empty in the file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Quality == "" {
		c.Quality = def.Quality
	}
	if c.PlaylistQuality == "" {
		c.PlaylistQuality = def.PlaylistQuality
	}
	if c.AudioFormat == "" {
		c.AudioFormat = def.AudioFormat
	}
	if c.AudioQuality == "" {
		c.AudioQuality = def.AudioQuality
	}
	if c.MergeFormat == "" {
		c.MergeFormat = def.MergeFormat
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/ytdl/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &Config{AutoInstall: true}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.OutputDir = expandPath(cfg.OutputDir)
	cfg.applyDefaults()

	return cfg, nil
}

// expandPath expands the tilde (~) in the path to the user's home directory.
// Both separators are accepted so "~\Downloads" works on every platform.
func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		if len(path) == 1 || path[1] == '/' || path[1] == '\\' {
			home, err := os.UserHomeDir()
			if err == nil {
				subPath := path[1:]
				if len(subPath) > 0 && (subPath[0] == '/' || subPath[0] == '\\') {
					subPath = subPath[1:]
				}
				return filepath.Join(home, subPath)
			}
		}
	}

	return path
}

// Save writes the config to ~/.config/ytdl/config.yml
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveFile(cfg, configPath)
}

// SaveFile writes the config to an explicit path.
func SaveFile(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# ytdl configuration file\n# Run 'ytdl init' to regenerate with defaults\n\n"
	content := header + string(data)

	return os.WriteFile(configPath, []byte(content), 0644)
}

// SavePath returns the path where config will be saved
func SavePath() string {
	if path, err := ConfigPath(); err == nil {
		return path
	}
	return ConfigFileName
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	return cfg
}
