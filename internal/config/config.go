package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Config holds the CLI configuration. All values are strings so they can be
// managed with config get/set/unset.
type Config struct {
	DefaultOutput     string `json:"default_output,omitempty" validate:"omitempty,oneof=json plain rich auto"`
	Timezone          string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	DefaultUnit       string `json:"default_unit,omitempty" validate:"omitempty,oneof=s ms us ns"`
	JSONFormat        string `json:"json_format,omitempty" validate:"omitempty,oneof=none pretty minimize"`
	Pythonic          string `json:"pythonic,omitempty" validate:"omitempty,oneof=true false"`
	LineEnding        string `json:"line_ending,omitempty" validate:"omitempty,oneof=lf crlf"`
	LogLevel          string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat         string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	DisableStateStore string `json:"disable_state,omitempty" validate:"omitempty,oneof=true false"`
}

var validate = validator.New()

// Load reads config from the XDG path, returns defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads config from path, returns defaults if the file doesn't exist
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks every value against its allowed set
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := jsonKey(reflect.TypeOf(*c), fe.StructField())
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", key, fmt.Sprint(fe.Value()), ruleHint(fe)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func ruleHint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "timezone":
		return "an IANA timezone name"
	default:
		return fe.Tag()
	}
}

func jsonKey(t reflect.Type, fieldName string) string {
	if field, ok := t.FieldByName(fieldName); ok {
		return strings.TrimSuffix(field.Tag.Get("json"), ",omitempty")
	}
	return fieldName
}

// Save writes the config to the XDG config path
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// JSON is valid JSON5
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Keys returns every config key in declaration order
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, strings.TrimSuffix(t.Field(i).Tag.Get("json"), ",omitempty"))
	}
	return keys
}

// field finds the struct field tagged with key
func (c *Config) field(key string) (reflect.Value, bool) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		if strings.TrimSuffix(t.Field(i).Tag.Get("json"), ",omitempty") == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	f, ok := c.field(key)
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return f.String(), nil
}

// Set assigns a config value by key name. The value is validated; an invalid
// value leaves the config unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	prev := f.String()
	f.SetString(value)
	if err := c.Validate(); err != nil {
		f.SetString(prev)
		return err
	}
	return nil
}

// Unset resets a config value to its default
func (c *Config) Unset(key string) error {
	f, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	f.SetString("")
	return nil
}

// Bool reads a "true"/"false" value; anything else is false
func Bool(s string) bool {
	return s == "true"
}
