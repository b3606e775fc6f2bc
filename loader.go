package calendar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables that override config values.
// A double underscore separates nesting levels and single underscores
// separate words: CALENDAR_UI__TITLE__FONT_SIZE sets ui.title.fontSize.
const EnvPrefix = "CALENDAR_"

// Load builds a Config by layering, from low to high precedence:
//  1. DefaultConfig
//  2. the YAML (or JSON) file at path, when path is not empty
//  3. environment variables with EnvPrefix
//
// The result is normalized and validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	// The built-in views are seeded as the lowest layer so that environment
	// variables override single fields of a view instead of replacing it.
	seed, err := yaml.Marshal(struct {
		Views map[string]ViewConfig `yaml:"views"`
	}{cfg.Views})
	if err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoadConfig, err)
	}
	if err := k.Load(rawYAML(seed), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoadConfig, err)
	}

	if path != "" {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
		// Views declared in a file replace the built-in set instead of
		// merging into it. The same goes for the button list derived from
		// them.
		if fk.Exists("views") {
			k.Delete("views")
			cfg.Views = nil
			cfg.DefaultView = ""
			cfg.UI.Buttons.Views = nil
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoadConfig, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// rawYAML is a koanf provider over an in-memory document.
type rawYAML []byte

func (b rawYAML) ReadBytes() ([]byte, error) { return b, nil }

func (b rawYAML) Read() (map[string]any, error) {
	return nil, errors.New("calendar: rawYAML provider does not support Read")
}

// envKey maps CALENDAR_LAYOUT__GAP to "layout.gap" and
// CALENDAR_DEFAULT_VIEW to "defaultView". Under views, the view id segment
// keeps its words joined by hyphens, so CALENDAR_VIEWS__PERSONAL_DAY__NAME
// sets views.personal-day.name.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	parts := strings.Split(strings.ToLower(s), "__")
	for i, p := range parts {
		if i == 1 && parts[0] == "views" {
			parts[i] = strings.ReplaceAll(p, "_", "-")
			continue
		}
		parts[i] = camelCase(p)
	}
	return strings.Join(parts, ".")
}

func camelCase(s string) string {
	words := strings.Split(s, "_")
	var b strings.Builder
	for i, w := range words {
		if w == "" {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(w[1:])
			continue
		}
		b.WriteString(w)
	}
	return b.String()
}

// Save writes cfg to path as YAML. The file is written to a temporary file in
// the same directory and renamed into place with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("calendar: config path is empty")
	}
	if cfg == nil {
		return errors.New("calendar: config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("calendar: create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("calendar: encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".calendar-config-*.tmp")
	if err != nil {
		return fmt.Errorf("calendar: create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("calendar: write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("calendar: sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("calendar: close config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("calendar: chmod config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("calendar: rename config: %w", err)
	}
	return nil
}
