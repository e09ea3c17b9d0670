package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"placereviews-parser/internal/scraper"
)

// LoadRuleset загружает набор селекторов из YAML; пропущенные ключи берутся из DefaultRuleset
func LoadRuleset(filePath string) (scraper.Ruleset, error) {
	if filePath == "" {
		return scraper.Ruleset{}, fmt.Errorf("ruleset file path is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return scraper.Ruleset{}, fmt.Errorf("failed to open ruleset file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close ruleset file: %v\n", closeErr)
		}
	}()

	// Декодируем поверх набора по умолчанию: отсутствующий ключ и явный 0 различимы
	rules := scraper.DefaultRuleset()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return scraper.Ruleset{}, fmt.Errorf("failed to parse ruleset YAML: %w", err)
	}

	if rules.ReplyMinCandidates <= 0 {
		return scraper.Ruleset{}, fmt.Errorf("reply_min_candidates must be > 0")
	}

	return rules.WithDefaults(), nil
}

// Ruleset возвращает набор из ruleset_file либо встроенный
func (c *Config) Ruleset() (scraper.Ruleset, error) {
	if c.RulesetFile == "" {
		return scraper.DefaultRuleset(), nil
	}
	return LoadRuleset(c.RulesetFile)
}

// NewScraper собирает скрапер с набором селекторов и словарём дат из конфига
func (c *Config) NewScraper() (*scraper.Scraper, error) {
	rules, err := c.Ruleset()
	if err != nil {
		return nil, err
	}
	vocabulary, err := scraper.VocabularyFor(c.DateLocale)
	if err != nil {
		return nil, err
	}
	return scraper.NewScraper(rules, scraper.NewDateParser(vocabulary))
}
