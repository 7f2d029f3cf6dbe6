package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Matching MatchingConfig `yaml:"matching"`
	Cooldown CooldownConfig `yaml:"cooldown"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"` // "*" allows every origin
	RecognizeRate  float64  `yaml:"recognize_rate"`  // requests per second, 0 disables limiting
	RecognizeBurst int      `yaml:"recognize_burst"`
}

type StorageConfig struct {
	ProfilesDir string `yaml:"profiles_dir"`
	LogsDir     string `yaml:"logs_dir"`
}

type MatchingConfig struct {
	Threshold  float64 `yaml:"threshold"`   // minimum correlation, exclusive
	ImageSize  int     `yaml:"image_size"`  // canonical width and height
	BlurKernel int     `yaml:"blur_kernel"` // odd Gaussian kernel size
	MaxPixels  int     `yaml:"max_pixels"`  // photos with more pixels are rejected undecoded
}

type CooldownConfig struct {
	Seconds int `yaml:"seconds"`
}

// Window returns the cooldown as a duration.
func (c CooldownConfig) Window() time.Duration {
	return time.Duration(c.Seconds) * time.Second
}

type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file"` // service account key
	SpreadsheetID   string `yaml:"spreadsheet_id"`   // empty disables the sink
	Range           string `yaml:"range"`            // A1 range rows are appended after
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// Enabled reports whether a spreadsheet is configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// Timeout returns the per-append timeout.
func (c SheetsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // optional rotated JSON log
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// envInt reads an environment variable and parses it as a non-negative integer.
// Returns the default value if the env var is unset, empty, negative, or invalid.
// Zero is kept, so COOLDOWN_SECONDS=0 disables the cooldown; Validate rejects
// zero where it makes no sense.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable as a float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}

// envString returns the env var, or the default when it is unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma separated env var, dropping empty items.
func envList(key string, defaultVal []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultVal
	}
	return items
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			AllowedOrigins: []string{"*"},
			RecognizeRate:  constants.DefaultRecognizeRate,
			RecognizeBurst: constants.DefaultRecognizeBurst,
		},
		Storage: StorageConfig{
			ProfilesDir: constants.DefaultProfilesDir,
			LogsDir:     constants.DefaultLogsDir,
		},
		Matching: MatchingConfig{
			Threshold:  constants.DefaultMatchThreshold,
			ImageSize:  constants.DefaultImageSize,
			BlurKernel: constants.DefaultBlurKernel,
			MaxPixels:  constants.DefaultMaxPixels,
		},
		Cooldown: CooldownConfig{
			Seconds: int(constants.DefaultCooldownWindow / time.Second),
		},
		Sheets: SheetsConfig{
			CredentialsFile: constants.DefaultSheetsCredentials,
			Range:           constants.DefaultSheetsRange,
			TimeoutSeconds:  int(constants.DefaultSyncTimeout / time.Second),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load returns the defaults overridden by environment variables.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile returns the defaults overridden by the YAML file at path and then
// by environment variables. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Host = envString("WEB_HOST", c.Server.Host)
	c.Server.Port = envInt("WEB_PORT", c.Server.Port)
	c.Server.AllowedOrigins = envList("WEB_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.RecognizeRate = envFloat("RECOGNIZE_RATE", c.Server.RecognizeRate)
	c.Server.RecognizeBurst = envInt("RECOGNIZE_BURST", c.Server.RecognizeBurst)

	c.Storage.ProfilesDir = envString("PROFILES_DIR", c.Storage.ProfilesDir)
	c.Storage.LogsDir = envString("LOGS_DIR", c.Storage.LogsDir)

	c.Matching.Threshold = envFloat("MATCH_THRESHOLD", c.Matching.Threshold)
	c.Matching.ImageSize = envInt("MATCH_IMAGE_SIZE", c.Matching.ImageSize)
	c.Matching.BlurKernel = envInt("MATCH_BLUR_KERNEL", c.Matching.BlurKernel)
	c.Matching.MaxPixels = envInt("MATCH_MAX_PIXELS", c.Matching.MaxPixels)

	c.Cooldown.Seconds = envInt("COOLDOWN_SECONDS", c.Cooldown.Seconds)

	c.Sheets.CredentialsFile = envString("SHEETS_CREDENTIALS_FILE", c.Sheets.CredentialsFile)
	c.Sheets.SpreadsheetID = envString("SHEETS_SPREADSHEET_ID", c.Sheets.SpreadsheetID)
	c.Sheets.Range = envString("SHEETS_RANGE", c.Sheets.Range)
	c.Sheets.TimeoutSeconds = envInt("SHEETS_TIMEOUT_SECONDS", c.Sheets.TimeoutSeconds)

	c.Log.Level = envString("LOG_LEVEL", c.Log.Level)
	c.Log.File = envString("LOG_FILE", c.Log.File)
	c.Log.MaxSizeMB = envInt("LOG_MAX_SIZE_MB", c.Log.MaxSizeMB)
	c.Log.MaxBackups = envInt("LOG_MAX_BACKUPS", c.Log.MaxBackups)
	c.Log.MaxAgeDays = envInt("LOG_MAX_AGE_DAYS", c.Log.MaxAgeDays)
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	if c.Server.RecognizeRate < 0 {
		errs = append(errs, errors.New("recognize rate must not be negative"))
	}
	if c.Server.RecognizeRate > 0 && c.Server.RecognizeBurst < 1 {
		errs = append(errs, errors.New("recognize burst must be at least 1"))
	}
	if c.Storage.ProfilesDir == "" {
		errs = append(errs, errors.New("profiles directory is required"))
	}
	if c.Storage.LogsDir == "" {
		errs = append(errs, errors.New("logs directory is required"))
	}
	if c.Matching.Threshold < -1 || c.Matching.Threshold >= 1 {
		errs = append(errs, fmt.Errorf("match threshold %v must be in [-1, 1)", c.Matching.Threshold))
	}
	if c.Matching.ImageSize < 1 {
		errs = append(errs, fmt.Errorf("image size %d must be positive", c.Matching.ImageSize))
	}
	if c.Matching.BlurKernel < 1 || c.Matching.BlurKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("blur kernel %d must be a positive odd number", c.Matching.BlurKernel))
	}
	if c.Matching.MaxPixels < 1 {
		errs = append(errs, fmt.Errorf("max pixels %d must be positive", c.Matching.MaxPixels))
	}
	if c.Cooldown.Seconds < 0 {
		errs = append(errs, errors.New("cooldown must not be negative"))
	}
	if c.Sheets.Enabled() && c.Sheets.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("sheets timeout must be at least one second"))
	}
	return errors.Join(errs...)
}
