// Package config provides user configuration management for maskedit.
//
// This package manages a YAML file holding named field profiles: a mask, an
// optional initial text, engine behaviour flags and per-token
// customizations. A handful of built-in profiles (time, time12, date, month,
// ipv4, money) are always available; profiles in the file override them by
// name.
//
// # Configuration File Location
//
// The file is maskedit/profiles.yaml under os.UserConfigDir:
//   - Linux: $XDG_CONFIG_HOME or $HOME/.config
//   - macOS: $HOME/Library/Application Support
//   - Windows: %AppData%
//
// MASKEDIT_CONFIG_DIR replaces the whole directory. Files are validated on
// load: every stored profile must build an engine.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	profile, err := registry.GetProfile("time")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine, err := profile.NewEngine()
//
// A profile in YAML:
//
//	profiles:
//	  shift:
//	    mask: "00:00"
//	    text: "08:00"
//	    tokens:
//	      0: {max: "24"}
//	      2: {max: "60", small: "15", custom_values: ["00", "15", "30", "45"]}
//
// # Thread Safety
//
// LoadRegistry reads the default file once per process. Writes go through a
// temporary file and a rename, serialized by a mutex.
package config
