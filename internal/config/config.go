package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type (
	Config struct {
		Owner       string   `json:"owner"`
		Repo        string   `json:"repo"`
		APIBaseURL  string   `json:"api_base_url"`
		WebBaseURL  string   `json:"web_base_url"`
		Delay       Duration `json:"delay"`
		Language    string   `json:"language"`
		UseEmoji    bool     `json:"use_emoji"`
		CatalogFile string   `json:"catalog_file,omitempty"`
		PathFile    string   `json:"path_file"`

		// Token is read from the environment and never written to disk.
		Token string `json:"-"`
	}

	// Duration is a time.Duration stored as a string such as "1s" or "500ms".
	Duration time.Duration
)

const (
	defaultOwner      = "jessai"
	defaultRepo       = "code-recall"
	defaultAPIBaseURL = "https://api.github.com/"
	defaultWebBaseURL = "https://github.com"
	defaultDelay      = Duration(time.Second)
	defaultLang       = LangEN
	defaultUseEmoji   = true

	configDirName  = ".issueseed"
	configFileName = "config.json"
)

// Environment variables read by ApplyEnv.
const (
	EnvToken         = "GITHUB_TOKEN"
	EnvTokenFallback = "GH_TOKEN"
	EnvOwner         = "ISSUESEED_OWNER"
	EnvRepo          = "ISSUESEED_REPO"
	EnvAPIBaseURL    = "ISSUESEED_API_URL"
)

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("delay must be a duration string like \"1s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid delay %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns a configuration holding the built-in defaults.
func Default() *Config {
	return &Config{
		Owner:      defaultOwner,
		Repo:       defaultRepo,
		APIBaseURL: defaultAPIBaseURL,
		WebBaseURL: defaultWebBaseURL,
		Delay:      defaultDelay,
		Language:   defaultLang,
		UseEmoji:   defaultUseEmoji,
	}
}

// LoadConfig reads the configuration file. path is either a .json file or a
// directory under which .issueseed/config.json lives. A missing file is
// created with the defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, configDirName)
		configPath = filepath.Join(configDir, configFileName)

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error decoding config JSON: %w", err)
	}
	config.PathFile = configPath

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	config.PathFile = path

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := Validate(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

// ApplyEnv overlays values from the environment. getenv is os.Getenv outside tests.
func ApplyEnv(config *Config, getenv func(string) string) {
	if token := strings.TrimSpace(getenv(EnvToken)); token != "" {
		config.Token = token
	} else if token := strings.TrimSpace(getenv(EnvTokenFallback)); token != "" {
		config.Token = token
	}
	if owner := getenv(EnvOwner); owner != "" {
		config.Owner = owner
	}
	if repo := getenv(EnvRepo); repo != "" {
		config.Repo = repo
	}
	if apiURL := getenv(EnvAPIBaseURL); apiURL != "" {
		config.APIBaseURL = apiURL
	}
}

// SetRepository parses "owner/repo" into the config.
func (c *Config) SetRepository(fullName string) error {
	owner, repo, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return fmt.Errorf("repository must be in the form owner/repo, got %q", fullName)
	}
	c.Owner = owner
	c.Repo = repo
	return nil
}

// Repository returns "owner/repo".
func (c *Config) Repository() string {
	return c.Owner + "/" + c.Repo
}

// MaskedToken returns the token with everything but the last four characters hidden.
func (c *Config) MaskedToken() string {
	if c.Token == "" {
		return ""
	}
	if len(c.Token) <= 4 {
		return strings.Repeat("*", len(c.Token))
	}
	return strings.Repeat("*", 8) + c.Token[len(c.Token)-4:]
}

func Validate(config *Config) error {
	if config.Owner == "" {
		return errors.New("owner cannot be empty")
	}
	if config.Repo == "" {
		return errors.New("repo cannot be empty")
	}
	if config.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	if !IsSupportedLanguage(config.Language) {
		return fmt.Errorf("unsupported language: %s", config.Language)
	}
	return nil
}
