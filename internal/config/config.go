// Package config reads and writes user settings.
//
// Settings live in a key=value file at ~/.config/airename/config
// (XDG_CONFIG_HOME honored). Unset keys fall back to AIRENAME_<KEY>
// environment variables, then to built-in defaults.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/source"
)

// Config keys.
const (
	KeyProvider       = "provider"
	KeyModel          = "model"
	KeyBaseURL        = "base-url"
	KeyCase           = "case"
	KeyChars          = "chars"
	KeyLanguage       = "language"
	KeyFrames         = "frames"
	KeyCustomPrompt   = "custom-prompt"
	KeyConcurrency    = "concurrency"
	KeyTimeout        = "timeout"
	KeyIncludeSubdirs = "include-subdirs"
	KeyCustomTypes    = "custom-types"
	KeyStopwords      = "stopwords"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
)

// keyOrder lists every key in display order.
var keyOrder = []string{
	KeyProvider, KeyModel, KeyBaseURL, KeyCase, KeyChars, KeyLanguage,
	KeyFrames, KeyCustomPrompt, KeyConcurrency, KeyTimeout,
	KeyIncludeSubdirs, KeyCustomTypes, KeyStopwords, KeyLogLevel, KeyLogFormat,
}

// Environment variables.
const (
	EnvPrefix    = "AIRENAME_"
	EnvAPIKey    = "AIRENAME_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// Defaults.
const (
	DefaultProvider    = "ollama"
	DefaultModel       = "llava"
	DefaultCase        = casing.Kebab
	DefaultChars       = 50
	DefaultLanguage    = "en"
	DefaultFrames      = source.DefaultFrames
	DefaultConcurrency = 4
	DefaultTimeout     = provider.DefaultTimeout
	maxChars           = 255
	maxFrames          = 10
	maxConcurrency     = 32
)

// Config holds resolved settings. Zero values mean "not set" only before
// Load fills defaults.
type Config struct {
	Provider       string
	Model          string
	BaseURL        string // empty means the provider's default endpoint
	Case           string
	Chars          int
	Language       string
	Frames         int
	CustomPrompt   string
	Concurrency    int
	Timeout        time.Duration
	IncludeSubdirs bool
	CustomTypes    []string
	Stopwords      []string // added to the built-in answer stopwords
	LogLevel       string
	LogFormat      string

	// APIKey comes from the environment only, never from the config file.
	APIKey string
}

// Keys returns all config keys in display order.
func Keys() []string {
	return slices.Clone(keyOrder)
}

// IsKey reports whether key is a known config key.
func IsKey(key string) bool {
	return slices.Contains(keyOrder, key)
}

// EnvName returns the environment variable consulted for key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/airename.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "airename"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "airename"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		Case:        DefaultCase,
		Chars:       DefaultChars,
		Language:    DefaultLanguage,
		Frames:      DefaultFrames,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
	}
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then AIRENAME_<KEY> environment variables,
// then defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := Defaults()

	values, err := List()
	if err != nil {
		return cfg, err
	}

	// Environment variable fallback (only if not set in config).
	for _, key := range keyOrder {
		if _, ok := values[key]; ok {
			continue
		}
		if v := os.Getenv(EnvName(key)); v != "" {
			values[key] = v
		}
	}

	if err := cfg.Apply(values); err != nil {
		return cfg, err
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvOpenAIKey)
	}
	return cfg, nil
}

// Apply overlays key=value settings onto c. Empty values leave the current
// setting alone. Unknown keys and invalid values fail with the key named in
// the error.
func (c *Config) Apply(values map[string]string) error {
	for _, key := range keyOrder {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := c.set(key, v); err != nil {
			return err
		}
	}
	for key := range values {
		if !IsKey(key) {
			return fmt.Errorf("%q: %w", key, ErrUnknownKey)
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	value = strings.TrimSpace(value)
	if err := Validate(key, value); err != nil {
		return err
	}
	if value == "" {
		return nil
	}

	switch key {
	case KeyProvider:
		c.Provider = value
	case KeyModel:
		c.Model = value
	case KeyBaseURL:
		c.BaseURL = value
	case KeyCase:
		c.Case = value
	case KeyChars:
		c.Chars, _ = strconv.Atoi(value)
	case KeyLanguage:
		c.Language = value
	case KeyFrames:
		c.Frames, _ = strconv.Atoi(value)
	case KeyCustomPrompt:
		c.CustomPrompt = value
	case KeyConcurrency:
		c.Concurrency, _ = strconv.Atoi(value)
	case KeyTimeout:
		c.Timeout, _ = time.ParseDuration(value)
	case KeyIncludeSubdirs:
		c.IncludeSubdirs, _ = strconv.ParseBool(value)
	case KeyCustomTypes:
		c.CustomTypes = SplitList(value)
	case KeyStopwords:
		c.Stopwords = SplitList(value)
	case KeyLogLevel:
		c.LogLevel = value
	case KeyLogFormat:
		c.LogFormat = value
	}
	return nil
}

// Values returns c as key=value settings, the inverse of Apply.
func (c Config) Values() map[string]string {
	return map[string]string{
		KeyProvider:       c.Provider,
		KeyModel:          c.Model,
		KeyBaseURL:        c.BaseURL,
		KeyCase:           c.Case,
		KeyChars:          strconv.Itoa(c.Chars),
		KeyLanguage:       c.Language,
		KeyFrames:         strconv.Itoa(c.Frames),
		KeyCustomPrompt:   c.CustomPrompt,
		KeyConcurrency:    strconv.Itoa(c.Concurrency),
		KeyTimeout:        c.Timeout.String(),
		KeyIncludeSubdirs: strconv.FormatBool(c.IncludeSubdirs),
		KeyCustomTypes:    strings.Join(c.CustomTypes, ","),
		KeyStopwords:      strings.Join(c.Stopwords, ","),
		KeyLogLevel:       c.LogLevel,
		KeyLogFormat:      c.LogFormat,
	}
}

// Validate checks value for key. Empty values are valid for every key
// and mean "use the default".
func Validate(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("%q (use one of: %s): %w", key, strings.Join(keyOrder, ", "), ErrUnknownKey)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var err error
	switch key {
	case KeyProvider:
		_, err = provider.ParseKind(value)
	case KeyCase:
		_, err = casing.ParseStyle(value)
	case KeyLanguage:
		_, err = lang.Parse(value)
	case KeyChars:
		err = checkInt(value, 1, maxChars)
	case KeyFrames:
		err = checkInt(value, 1, maxFrames)
	case KeyConcurrency:
		err = checkInt(value, 1, maxConcurrency)
	case KeyTimeout:
		var d time.Duration
		if d, err = time.ParseDuration(value); err == nil && d <= 0 {
			err = errors.New("must be positive")
		}
	case KeyIncludeSubdirs:
		_, err = strconv.ParseBool(value)
	case KeyCustomTypes:
		for _, ext := range SplitList(value) {
			if _, err = source.NormalizeExtension(ext); err != nil {
				break
			}
		}
	case KeyStopwords:
		for _, w := range SplitList(value) {
			if strings.Contains(w, "-") {
				err = fmt.Errorf("%q: stopwords cannot contain hyphens", w)
				break
			}
		}
	case KeyLogLevel:
		_, err = logger.FromConfig(value, "")
	case KeyLogFormat:
		_, err = logger.FromConfig("", value)
	}
	if err != nil {
		return fmt.Errorf("%s=%q: %w: %w", key, value, ErrInvalidValue, err)
	}
	return nil
}

func checkInt(value string, lo, hi int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.New("not a number")
	}
	if n < lo || n > hi {
		return fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return nil
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save validates and writes a single key=value to the config file.
// An empty value removes the key. Creates the config directory and file if
// they don't exist. Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	value = strings.TrimSpace(value)
	if err := Validate(key, value); err != nil {
		return err
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := List()
	if err != nil {
		return err
	}

	if value == "" {
		delete(existing, key)
	} else {
		existing[key] = value
	}

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
func writeFile(p string, data map[string]string) error {
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(data)) {
		fmt.Fprintf(&b, "%s=%s\n", key, data[key])
	}
	// #nosec G306 -- config file with standard permissions
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	if !IsKey(key) {
		return "", fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all values stored in the config file.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	return dir()
}
