package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "maskedit"
	configFile = "profiles.yaml"

	// ConfigDirEnvVar overrides the directory holding the profiles file.
	ConfigDirEnvVar = "MASKEDIT_CONFIG_DIR"

	registryVersion = 1
)

var (
	loadOnce   sync.Once
	loaded     *Registry
	loadErr    error
	writeMutex sync.Mutex
)

// GetConfigDir returns the directory of the profiles file:
// $MASKEDIT_CONFIG_DIR when set, otherwise maskedit under os.UserConfigDir
// ($XDG_CONFIG_HOME or ~/.config on Linux, ~/Library/Application Support on
// macOS, %AppData% on Windows).
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the full path to the profiles file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadRegistry loads the profiles file from the default location once per
// process. Later calls return the same registry.
func LoadRegistry() (*Registry, error) {
	loadOnce.Do(func() {
		var path string
		path, loadErr = GetConfigPath()
		if loadErr != nil {
			return
		}
		loaded, loadErr = LoadRegistryFrom(path)
	})
	return loaded, loadErr
}

// LoadRegistryFrom reads and validates a profiles file. A missing file
// yields a new default registry.
func LoadRegistryFrom(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	registry := &Registry{}
	if err := yaml.Unmarshal(data, registry); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}
	if registry.Version != registryVersion {
		return nil, fmt.Errorf("unsupported profiles version: %d (expected %d)", registry.Version, registryVersion)
	}

	defaults := NewRegistry()
	if registry.Profiles == nil {
		registry.Profiles = defaults.Profiles
	}
	if registry.Preferences == nil {
		registry.Preferences = defaults.Preferences
	}

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profiles in %s: %w", path, err)
	}
	return registry, nil
}

// Validate builds an engine for every stored profile and reports all the
// profiles that fail.
func (r *Registry) Validate() error {
	var errs error
	for _, name := range r.ProfileNames() {
		p, ok := r.Profiles[name]
		if !ok {
			continue
		}
		if p == nil {
			errs = multierr.Append(errs, fmt.Errorf("profile %q: empty", name))
			continue
		}
		if _, err := p.NewEngine(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("profile %q: %w", name, err))
		}
	}
	return errs
}

// Save writes the registry to the default location, creating the directory.
func (r *Registry) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return r.SaveTo(path)
}

// SaveTo writes the registry to path through a temporary file in the same
// directory, so readers and watchers never see a partial file.
func (r *Registry) SaveTo(path string) error {
	writeMutex.Lock()
	defer writeMutex.Unlock()

	body, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	header := "# maskedit profiles\n" +
		"# Each profile names a mask, an optional initial text and per-token\n" +
		"# customizations keyed by token sequence number.\n\n"

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+configFile+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary profiles file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save profiles file: %w", err)
	}
	return nil
}

// DefaultRegistry returns a registry holding a copy of every built-in
// profile, as a starting point for editing.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for name, p := range BuiltinProfiles() {
		registry.SetProfile(name, p)
	}
	return registry
}

// CreateDefaultConfig writes DefaultRegistry to the default location.
func CreateDefaultConfig() error {
	return DefaultRegistry().Save()
}
