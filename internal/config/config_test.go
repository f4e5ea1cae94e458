package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create default config when file does not exist", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "jessai", cfg.Owner)
		assert.Equal(t, "code-recall", cfg.Repo)
		assert.Equal(t, time.Second, cfg.Delay.Std())
		assert.Equal(t, LangEN, cfg.Language)
		assert.True(t, cfg.UseEmoji)
		assert.Equal(t, filepath.Join(tmpDir, ".issueseed", "config.json"), cfg.PathFile)
		assert.FileExists(t, cfg.PathFile)
	})

	t.Run("should load an existing config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		content := `{"owner":"acme","repo":"widgets","delay":"250ms","language":"es","use_emoji":false}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.Owner)
		assert.Equal(t, "widgets", cfg.Repo)
		assert.Equal(t, 250*time.Millisecond, cfg.Delay.Std())
		assert.Equal(t, LangES, cfg.Language)
		assert.False(t, cfg.UseEmoji)
		assert.Equal(t, "https://api.github.com/", cfg.APIBaseURL, "missing keys keep their defaults")
		assert.Equal(t, path, cfg.PathFile)
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"owner":`), 0644))

		_, err := LoadConfig(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decoding")
	})

	t.Run("should fail on invalid delay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"delay":"soon"}`), 0644))

		_, err := LoadConfig(path)

		assert.Error(t, err)
	})

	t.Run("should fail validation on unsupported language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"language":"fr"}`), 0644))

		_, err := LoadConfig(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported language")
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should never write the token", func(t *testing.T) {
		cfg := Default()
		cfg.PathFile = filepath.Join(t.TempDir(), "config.json")
		cfg.Token = "ghp_secret"

		require.NoError(t, SaveConfig(cfg))

		data, err := os.ReadFile(cfg.PathFile)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "ghp_secret")

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, "1s", raw["delay"])
	})

	t.Run("should fail without path", func(t *testing.T) {
		err := SaveConfig(Default())
		assert.Error(t, err)
	})

	t.Run("should fail on invalid config", func(t *testing.T) {
		cfg := Default()
		cfg.Owner = ""
		cfg.PathFile = filepath.Join(t.TempDir(), "config.json")

		assert.Error(t, SaveConfig(cfg))
	})
}

func TestApplyEnv(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	t.Run("should read GITHUB_TOKEN", func(t *testing.T) {
		cfg := Default()
		ApplyEnv(cfg, env(map[string]string{EnvToken: " ghp_abc \n", EnvTokenFallback: "other"}))
		assert.Equal(t, "ghp_abc", cfg.Token)
	})

	t.Run("should fall back to GH_TOKEN", func(t *testing.T) {
		cfg := Default()
		ApplyEnv(cfg, env(map[string]string{EnvTokenFallback: "gh_fallback"}))
		assert.Equal(t, "gh_fallback", cfg.Token)
	})

	t.Run("should leave token empty when unset", func(t *testing.T) {
		cfg := Default()
		ApplyEnv(cfg, env(nil))
		assert.Empty(t, cfg.Token)
	})

	t.Run("should override repository and API URL", func(t *testing.T) {
		cfg := Default()
		ApplyEnv(cfg, env(map[string]string{
			EnvOwner:      "acme",
			EnvRepo:       "widgets",
			EnvAPIBaseURL: "https://ghe.example.com/api/v3/",
		}))
		assert.Equal(t, "acme/widgets", cfg.Repository())
		assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.APIBaseURL)
	})
}

func TestSetRepository(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "acme/widgets", want: "acme/widgets"},
		{input: " acme/widgets ", want: "acme/widgets"},
		{input: "acme", wantErr: true},
		{input: "/widgets", wantErr: true},
		{input: "acme/", wantErr: true},
		{input: "acme/widgets/extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := Default()
			err := cfg.SetRepository(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "jessai/code-recall", cfg.Repository())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Repository())
		})
	}
}

func TestMaskedToken(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.MaskedToken())

	cfg.Token = "abc"
	assert.Equal(t, "***", cfg.MaskedToken())

	cfg.Token = "ghp_1234567890"
	assert.Equal(t, "********7890", cfg.MaskedToken())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(cfg))

	cfg.Delay = Duration(-time.Second)
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Repo = ""
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Delay = 0
	assert.NoError(t, Validate(cfg), "zero delay disables the pause")
}
