// Package config loads extractor settings and stop-lists from YAML, text
// and SQLite sources.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/phrase"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/tokenize"
)

// Stoplist formats
const (
	FormatText   = "text"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// Config holds all configuration for the extractor and its drivers.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Stoplist  StoplistConfig  `yaml:"stoplist"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Phrase    PhraseConfig    `yaml:"phrase"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Server    ServerConfig    `yaml:"server"`
}

// StoplistConfig locates the stopword source.
type StoplistConfig struct {
	Path         string `yaml:"path"`
	Format       string `yaml:"format"` // text, yaml or sqlite; empty detects from the extension
	Name         string `yaml:"name"`   // list name inside a SQLite store
	KeepComments bool   `yaml:"keep_comments"`
}

// TokenizerConfig mirrors tokenize.Options.
type TokenizerConfig struct {
	MinWordLength    int    `yaml:"min_word_length"`
	Delimiters       string `yaml:"delimiters"`
	KeepNumbers      bool   `yaml:"keep_numbers"`
	NormalizeUnicode bool   `yaml:"normalize_unicode"`
}

// PhraseConfig mirrors phrase.Filter.
type PhraseConfig struct {
	MaxWords int `yaml:"max_words"`
	MinChars int `yaml:"min_chars"`
}

// RankingConfig controls the size of Result.Top.
type RankingConfig struct {
	TopDivisor int `yaml:"top_divisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *Config) {
	if cfg.Stoplist.Name == "" {
		cfg.Stoplist.Name = store.DefaultStoplist
	}
	if cfg.Tokenizer.Delimiters == "" {
		cfg.Tokenizer.Delimiters = tokenize.Extended.String()
	}
	if cfg.Ranking.TopDivisor == 0 {
		cfg.Ranking.TopDivisor = rake.DefaultTopDivisor
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w: %w", internalerr.ErrResourceUnavailable, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w: %w", internalerr.ErrInvalidConfig, err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Stoplist.Format {
	case "", FormatText, FormatYAML, FormatSQLite:
	default:
		return fmt.Errorf("stoplist.format %q: %w", c.Stoplist.Format, internalerr.ErrInvalidConfig)
	}
	if _, ok := tokenize.ParseDelimiters(c.Tokenizer.Delimiters); !ok {
		return fmt.Errorf("tokenizer.delimiters %q: %w", c.Tokenizer.Delimiters, internalerr.ErrInvalidConfig)
	}
	if c.Tokenizer.MinWordLength < 0 {
		return fmt.Errorf("tokenizer.min_word_length must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.Phrase.MaxWords < 0 || c.Phrase.MinChars < 0 {
		return fmt.Errorf("phrase limits must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.Ranking.TopDivisor < 1 {
		return fmt.Errorf("ranking.top_divisor must be at least 1: %w", internalerr.ErrInvalidConfig)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d: %w", c.Server.Port, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ExtractorOptions converts the config into rake.Options for the given stopwords.
func (c *Config) ExtractorOptions(stopwords *stoplist.Set) rake.Options {
	delims, _ := tokenize.ParseDelimiters(c.Tokenizer.Delimiters)
	return rake.Options{
		Stopwords: stopwords,
		Tokenizer: tokenize.Options{
			Delimiters:       delims,
			MinWordLength:    c.Tokenizer.MinWordLength,
			KeepNumbers:      c.Tokenizer.KeepNumbers,
			NormalizeUnicode: c.Tokenizer.NormalizeUnicode,
		},
		Filter: phrase.Filter{
			MaxWords: c.Phrase.MaxWords,
			MinChars: c.Phrase.MinChars,
		},
		TopDivisor: c.Ranking.TopDivisor,
	}
}

// ApplyEnv loads .env files (missing files are ignored) and applies RAKE_*
// overrides from the environment.
func (c *Config) ApplyEnv(files ...string) error {
	_ = godotenv.Load(files...)

	if v, ok := os.LookupEnv("RAKE_STOPLIST"); ok {
		c.Stoplist.Path = v
	}
	if v, ok := os.LookupEnv("RAKE_STOPLIST_FORMAT"); ok {
		c.Stoplist.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("RAKE_STOPLIST_NAME"); ok {
		c.Stoplist.Name = v
	}
	if v, ok := os.LookupEnv("RAKE_DELIMITERS"); ok {
		c.Tokenizer.Delimiters = v
	}
	if v, ok := os.LookupEnv("RAKE_SERVER_HOST"); ok {
		c.Server.Host = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"RAKE_MIN_WORD_LENGTH", &c.Tokenizer.MinWordLength},
		{"RAKE_MAX_WORDS", &c.Phrase.MaxWords},
		{"RAKE_MIN_CHARS", &c.Phrase.MinChars},
		{"RAKE_TOP_DIVISOR", &c.Ranking.TopDivisor},
		{"RAKE_SERVER_PORT", &c.Server.Port},
	}
	for _, e := range ints {
		if err := getEnvInt(e.key, e.dst); err != nil {
			return err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"RAKE_DEBUG", &c.Debug},
		{"RAKE_KEEP_NUMBERS", &c.Tokenizer.KeepNumbers},
		{"RAKE_NORMALIZE_UNICODE", &c.Tokenizer.NormalizeUnicode},
	}
	for _, e := range bools {
		if err := getEnvBool(e.key, e.dst); err != nil {
			return err
		}
	}
	return nil
}

func getEnvInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, internalerr.ErrInvalidConfig)
	}
	*dst = n
	return nil
}

func getEnvBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, v, internalerr.ErrInvalidConfig)
	}
	*dst = b
	return nil
}

// Stoplist represents a YAML stopword list
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stoplist: %w: %w", internalerr.ErrResourceUnavailable, err)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w: %w", internalerr.ErrInvalidConfig, err)
	}

	return &sl, nil
}
