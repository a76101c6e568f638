package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CalendarSource describes one named remote calendar subscription.
type CalendarSource struct {
	// Name is the operator-chosen label, unique within the config.
	Name string `yaml:"name"`
	// URL is the ICS endpoint.
	URL string `yaml:"url"`
}

// Config is the persisted application configuration: the list of named
// calendar sources. It is loaded explicitly, passed by value through the
// CLI layer, and written back explicitly after every mutation.
type Config struct {
	Calendars []CalendarSource `yaml:"calendars"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{Calendars: []CalendarSource{}}
}

// Normalize fills in nil fields so that partially-filled configs behave
// correctly.
func (c *Config) Normalize() {
	if c.Calendars == nil {
		c.Calendars = []CalendarSource{}
	}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/hourcal/config.yaml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "hourcal", "config.yaml"), nil
}

// Add appends a named source. The name must be non-empty and unique.
func (c *Config) Add(name, url string) error {
	if name == "" {
		return errors.New("calendar name is empty")
	}
	if url == "" {
		return errors.New("calendar URL is empty")
	}
	for _, cal := range c.Calendars {
		if cal.Name == name {
			return fmt.Errorf("calendar %q already exists", name)
		}
	}
	c.Calendars = append(c.Calendars, CalendarSource{Name: name, URL: url})
	return nil
}

// Remove deletes the source with the given name.
func (c *Config) Remove(name string) error {
	for i, cal := range c.Calendars {
		if cal.Name == name {
			c.Calendars = append(c.Calendars[:i], c.Calendars[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("calendar %q not found", name)
}

// Find resolves ref, which is either a source name or a 1-based index into
// the configured list.
func (c *Config) Find(ref string) (CalendarSource, error) {
	for _, cal := range c.Calendars {
		if cal.Name == ref {
			return cal, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(c.Calendars) {
			return CalendarSource{}, fmt.Errorf("calendar index %d out of range (1-%d)", n, len(c.Calendars))
		}
		return c.Calendars[n-1], nil
	}
	return CalendarSource{}, fmt.Errorf("calendar %q not found", ref)
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create a default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so the caller
				// can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".hourcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the
// package-level Save function:
//
//	cfg, _ := config.Load(path)
//	// ... mutate cfg ...
//	if err := cfg.Save(path); err != nil { ... }
func (c *Config) Save(path string) error {
	return Save(path, c)
}
