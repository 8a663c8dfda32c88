package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/statusled/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "STATUSLED_"

// LoadConfig loads configuration with proper precedence: CLI args > env vars > config file.
// If cmd is provided, flags explicitly set via CLI will not be overwritten.
// Unreadable files and malformed values are reported as *Error.
//
// The config file is TOML unless its name ends in ".json", in which case it is
// read as a flat Home Assistant add-on options file keyed by the json tag.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	// Build set of flags explicitly changed via CLI
	changedFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changedFlags[f.Name] = true
			}
		})
	}

	var configPath string
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		configPath = f.String()
	}

	if configPath != "" {
		values, err := readConfigFile(configPath)
		if err != nil {
			return invalid("config", configPath, err)
		}

		for i := 0; i < v.NumField(); i++ {
			fieldType := t.Field(i)
			if changedFlags[flagName(fieldType)] {
				continue
			}

			key := fieldType.Tag.Get("toml")
			if isJSON(configPath) {
				key = fieldType.Tag.Get("json")
			}
			if key == "" || key == "-" {
				continue
			}
			if value := getNestedValue(values, key); value != nil {
				if err := setFieldValue(v.Field(i), value); err != nil {
					return invalid(key, value, err)
				}
			}
		}
	}

	return applyEnv(v, changedFlags)
}

// applyEnv overrides fields from STATUSLED_* variables, then from unprefixed
// aliases injected by the runtime such as SUPERVISOR_TOKEN. Fields set on the
// command line are left alone.
func applyEnv(v reflect.Value, changedFlags map[string]bool) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if changedFlags[flagName(field)] {
			continue
		}

		var names []string
		if key := field.Tag.Get("env"); key != "" {
			names = append(names, EnvPrefix+key)
		}
		if alias := field.Tag.Get("envalias"); alias != "" {
			names = append(names, alias)
		}
		for _, name := range names {
			raw := os.Getenv(name)
			if raw == "" {
				continue
			}
			if err := setFieldValueFromString(v.Field(i), raw); err != nil {
				return invalid(name, raw, err)
			}
			break
		}
	}
	return nil
}

// invalid reports a value that could not be loaded as a single-problem *Error.
func invalid(option string, value any, err error) *Error {
	return &Error{Problems: []Problem{{Option: option, Value: value, Reason: err.Error()}}}
}

// readConfigFile parses the config file into a generic map.
// A missing file is not an error.
func readConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var values map[string]any
	if isJSON(path) {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse JSON options: %w", err)
		}
		return values, nil
	}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return values, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// flagName returns the CLI flag bound to a struct field.
// An explicit flag tag wins over the derived name.
func flagName(field reflect.StructField) string {
	if name := field.Tag.Get("flag"); name != "" {
		return name
	}
	return fieldNameToFlag(field.Name)
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "LedCount" -> "led-count", "Brightness" -> "brightness".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			return nil
		}
	}
	return nil
}

// setFieldValue sets a field value using reflection. TOML integers arrive as
// int64 and JSON numbers as float64; a fractional number for an int field is
// rejected rather than truncated.
func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(s)
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	case reflect.Int:
		switch n := value.(type) {
		case int64:
			field.SetInt(n)
		case int:
			field.SetInt(int64(n))
		case float64:
			if n != math.Trunc(n) {
				return fmt.Errorf("expected integer, got %v", n)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		arr, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected list, got %T", value)
		}
		slice := make([]string, 0, len(arr))
		for _, v := range arr {
			s, strOk := v.(string)
			if !strOk {
				return fmt.Errorf("expected list of strings, got %T element", v)
			}
			slice = append(slice, s)
		}
		field.Set(reflect.ValueOf(slice))
	}
	return nil
}

// setFieldValueFromString parses an environment value into field. Lists are
// comma separated.
func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
		field.SetBool(b)
	case reflect.Int:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected integer, got %q", value)
		}
		field.SetInt(int64(i))
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		var list []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		field.Set(reflect.ValueOf(list))
	}
	return nil
}

// LoadLoggingConfig reads the [logging] table of a TOML config file: level
// and format, with every other key naming a module. A missing, unparsable or
// JSON options file yields the defaults.
func LoadLoggingConfig(configPath string) logging.Config {
	cfg := logging.Config{
		Level:   "info",
		Format:  "text",
		Modules: make(map[string]string),
	}
	if configPath == "" || isJSON(configPath) {
		return cfg
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg
	}
	var raw struct {
		Logging map[string]any `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg
	}

	for key, value := range raw.Logging {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "level":
			cfg.Level = s
		case "format":
			cfg.Format = s
		default:
			cfg.Modules[key] = s
		}
	}
	return cfg
}
