package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placereviews-parser/internal/scraper"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
pagination:
  max_pages: 3
date_locale: ru
observability:
  log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pagination.MaxPages)
	assert.Equal(t, "ru", cfg.DateLocale)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent())
	assert.Equal(t, DefaultAcceptLanguage, cfg.AcceptLanguage())
	assert.Equal(t, 30000, cfg.HTTP.TotalTimeoutMS)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, "uk", cfg.DateLocale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative max pages", func(c *Config) { c.Pagination.MaxPages = -1 }},
		{"zero timeout", func(c *Config) { c.HTTP.TotalTimeoutMS = 0 }},
		{"unknown locale", func(c *Config) { c.DateLocale = "de" }},
		{"storage without dsn", func(c *Config) { c.Storage.Enabled = true }},
		{"unknown log level", func(c *Config) { c.Observability.LogLevel = "trace" }},
		{"rod without timeout", func(c *Config) { c.Rod.Enabled = true; c.Rod.PageTimeoutS = 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRulesetOverridesSelectedKeys(t *testing.T) {
	path := writeFile(t, "ruleset.yaml", `
review_block: div.review
reply_min_candidates: 2
`)

	rules, err := LoadRuleset(path)
	require.NoError(t, err)

	assert.Equal(t, "div.review", rules.ReviewBlock)
	assert.Equal(t, 2, rules.ReplyMinCandidates)
	assert.Equal(t, scraper.DefaultRuleset().TokenAttr, rules.TokenAttr)
}

func TestLoadRulesetRejectsUnknownKeys(t *testing.T) {
	_, err := LoadRuleset(writeFile(t, "ruleset.yaml", "reveiw_block: div.review\n"))
	assert.Error(t, err)

	_, err = LoadRuleset("")
	assert.Error(t, err)
}

func TestLoadRulesetReplyThreshold(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
		wantErr  bool
	}{
		{"omitted keeps default", "review_block: div.review\n", 4, false},
		{"explicit value", "reply_min_candidates: 6\n", 6, false},
		{"zero rejected", "reply_min_candidates: 0\n", 0, true},
		{"negative rejected", "reply_min_candidates: -1\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := LoadRuleset(writeFile(t, "ruleset.yaml", tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rules.ReplyMinCandidates)
		})
	}
}

func TestConfigNewScraper(t *testing.T) {
	cfg := Default()
	s, err := cfg.NewScraper()
	require.NoError(t, err)
	assert.Equal(t, scraper.DefaultRuleset(), s.Rules())

	cfg.RulesetFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.NewScraper()
	assert.Error(t, err)
}

func TestShippedConfigsMatchDefaults(t *testing.T) {
	rules, err := LoadRuleset(filepath.Join("..", "..", "configs", "ruleset.yaml"))
	require.NoError(t, err)
	assert.Equal(t, scraper.DefaultRuleset(), rules)

	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "uk", cfg.DateLocale)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, 0, cfg.Pagination.MaxPages)
}
