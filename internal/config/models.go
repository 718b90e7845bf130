package config

import (
	"fmt"
	"maps"
	"slices"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile describes one masked field.
type Profile struct {
	Description string `yaml:"description,omitempty"`
	Mask        string `yaml:"mask"`
	Text        string `yaml:"text,omitempty"` // initial display text, empty = template

	SplitChars        *string           `yaml:"split_chars,omitempty"` // nil = ":$/"
	PromptChar        string            `yaml:"prompt_char,omitempty"`
	WrapAround        *bool             `yaml:"wrap_around,omitempty"`
	WrapIfNoCarryRoom bool              `yaml:"wrap_if_no_carry_room,omitempty"`
	CarryOver         *bool             `yaml:"carry_over,omitempty"`
	ByDigit           bool              `yaml:"by_digit,omitempty"`
	TooSmall          string            `yaml:"too_small,omitempty"` // keep | closest
	TooLarge          string            `yaml:"too_large,omitempty"`
	NumberFormat      *NumberFormatSpec `yaml:"number_format,omitempty"`

	Tokens map[int]*TokenSpec `yaml:"tokens,omitempty"` // keyed by token sequence number
}

// NumberFormatSpec selects the decimal and group separators of a profile.
type NumberFormatSpec struct {
	Decimal string `yaml:"decimal"`
	Group   string `yaml:"group"`
}

// TokenSpec holds the customizations of a single token. Numbers are decimal
// strings; empty fields keep the parser defaults.
type TokenSpec struct {
	Min            string   `yaml:"min,omitempty"`
	Max            string   `yaml:"max,omitempty"`
	Small          string   `yaml:"small,omitempty"`
	Big            string   `yaml:"big,omitempty"`
	CarryOver      *bool    `yaml:"carry_over,omitempty"`
	CarryOverScope int      `yaml:"carry_over_scope,omitempty"`
	ByDigit        *bool    `yaml:"by_digit,omitempty"`
	PadChar        string   `yaml:"pad_char,omitempty"`
	PadRule        string   `yaml:"pad_rule,omitempty"`
	ReverseUpDown  bool     `yaml:"reverse_up_down,omitempty"`
	CustomValues   []string `yaml:"custom_values,omitempty"`
	TooSmall       string   `yaml:"too_small,omitempty"`
	TooLarge       string   `yaml:"too_large,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultProfile  string `yaml:"default_profile,omitempty"`
	ServerPort      int    `yaml:"server_port"`      // port for "maskedit serve"
	DiscoverTimeout int    `yaml:"discover_timeout"` // mDNS browse timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Profiles: make(map[string]*Profile),
		Preferences: &Preferences{
			DefaultProfile:  "time",
			ServerPort:      8765,
			DiscoverTimeout: 5,
		},
	}
}

// GetProfile returns the named profile. Profiles stored in the registry
// take precedence over built-in ones.
func (r *Registry) GetProfile(name string) (*Profile, error) {
	if p, ok := r.Profiles[name]; ok && p != nil {
		return p, nil
	}
	if p, ok := BuiltinProfiles()[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown profile %q", name)
}

// SetProfile stores or replaces a profile.
func (r *Registry) SetProfile(name string, p *Profile) {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}
	r.Profiles[name] = p
}

// ProfileNames returns the names of every available profile, sorted.
func (r *Registry) ProfileNames() []string {
	names := make(map[string]bool)
	for name := range BuiltinProfiles() {
		names[name] = true
	}
	for name := range r.Profiles {
		names[name] = true
	}
	return slices.Sorted(maps.Keys(names))
}

func boolPtr(b bool) *bool { return &b }

// BuiltinProfiles returns a fresh copy of the profiles that ship with the
// tool.
func BuiltinProfiles() map[string]*Profile {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	return map[string]*Profile{
		"time": {
			Description: "24-hour clock",
			Mask:        "00:00",
			Text:        "00:00",
			Tokens: map[int]*TokenSpec{
				0: {Max: "24"},
				2: {Max: "60", Big: "15"},
			},
		},
		"time12": {
			Description: "12-hour clock with AM/PM",
			Mask:        `00:00 \A\M`,
			Text:        "12:00 AM",
			Tokens: map[int]*TokenSpec{
				0: {Min: "1", Max: "13"},
				2: {Max: "60", Big: "15"},
				3: {CustomValues: []string{" AM", " PM"}},
			},
		},
		"date": {
			Description: "ISO calendar date",
			Mask:        "0000/00/00",
			Text:        "2024/01/01",
			TooLarge:    "closest",
			TooSmall:    "closest",
			Tokens: map[int]*TokenSpec{
				0: {Min: "1", Max: "10000"},
				2: {Min: "1", Max: "13"},
				4: {Min: "1", Max: "32"},
			},
		},
		"month": {
			Description: "Month name",
			Mask:        ">L<LL",
			Text:        "Jan",
			Tokens: map[int]*TokenSpec{
				0: {CustomValues: months},
			},
		},
		"ipv4": {
			Description: "IPv4 address",
			Mask:        "000.000.000.000",
			Text:        "192.168.001.001",
			WrapAround:  boolPtr(false),
			CarryOver:   boolPtr(false),
			TooLarge:    "closest",
			Tokens: map[int]*TokenSpec{
				0: {Max: "256"},
				2: {Max: "256"},
				4: {Max: "256"},
				6: {Max: "256"},
			},
		},
		"money": {
			Description:  "Amount with thousands separator",
			Mask:         "$000,000.00",
			Text:         "$000,000.00",
			NumberFormat: &NumberFormatSpec{Decimal: ".", Group: ","},
			Tokens: map[int]*TokenSpec{
				1: {Small: "1", Big: "100"},
			},
		},
	}
}
