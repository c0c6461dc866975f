package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Selectors holds the CSS selectors for both pages. Card-level selectors are
// resolved inside a single card, cartoon-level ones inside the cartoon section.
type Selectors struct {
	Card          string `yaml:"card"`
	CardTitle     string `yaml:"card_title"`
	CardAuthor    string `yaml:"card_author"`
	CardImage     string `yaml:"card_image"`
	CartoonReady  string `yaml:"cartoon_ready"`
	CartoonRoot   string `yaml:"cartoon_root"`
	CartoonImage  string `yaml:"cartoon_image"`
	CartoonAuthor string `yaml:"cartoon_author"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		Card:          "article.normal",
		CardTitle:     "h2",
		CardAuthor:    ".author",
		CardImage:     ".image img",
		CartoonReady:  "section.cartoon-wrapper figure.popup-image img",
		CartoonRoot:   "section.cartoon-wrapper",
		CartoonImage:  "figure.popup-image img",
		CartoonAuthor: ".cartoon-author",
	}
}

// LoadSelectors reads selectors from a YAML file. Keys missing from the file
// keep their default values.
func LoadSelectors(filePath string) (*Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read selectors file: %s: %w", filePath, err)
	}

	selectors := DefaultSelectors()
	if err := yaml.Unmarshal(data, &selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// resolveSelectorsPath makes a relative selectors path relative to the config file.
func resolveSelectorsPath(configPath, selectorsPath string) string {
	if filepath.IsAbs(selectorsPath) || configPath == "" {
		return selectorsPath
	}
	return filepath.Join(filepath.Dir(configPath), selectorsPath)
}

func validateSelectors(s *Selectors) error {
	required := []struct {
		key   string
		value string
	}{
		{"card", s.Card},
		{"card_title", s.CardTitle},
		{"card_author", s.CardAuthor},
		{"card_image", s.CardImage},
		{"cartoon_ready", s.CartoonReady},
		{"cartoon_root", s.CartoonRoot},
		{"cartoon_image", s.CartoonImage},
		{"cartoon_author", s.CartoonAuthor},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("selector %s is required", r.key)
		}
	}
	return nil
}
