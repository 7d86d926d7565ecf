package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	ConfigPath     string
	StoplistPath   string // overrides stoplist.path when set
	StoplistFormat string // overrides stoplist.format when set
	EnvFiles       []string
	UseEnv         bool              // apply .env files and RAKE_* variables
	Override       func(cfg *Config) // applied last, before validation
}

// Components holds all loaded configuration components
type Components struct {
	Config    *Config
	Stopwords *stoplist.Set
	Extractor *rake.Extractor
}

// Load reads all configuration sources and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if l.UseEnv {
		if err := cfg.ApplyEnv(l.EnvFiles...); err != nil {
			return nil, fmt.Errorf("apply env: %w", err)
		}
	}
	if l.StoplistPath != "" {
		cfg.Stoplist.Path = l.StoplistPath
	}
	if l.StoplistFormat != "" {
		cfg.Stoplist.Format = l.StoplistFormat
	}
	if l.Override != nil {
		l.Override(cfg)
	}

	return Build(ctx, cfg)
}

// Build validates cfg, loads its stop-list and creates the extractor.
func Build(ctx context.Context, cfg *Config) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stopwords, err := LoadStopwords(ctx, cfg.Stoplist)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}

	extractor, err := rake.New(cfg.ExtractorOptions(stopwords))
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	return &Components{
		Config:    cfg,
		Stopwords: stopwords,
		Extractor: extractor,
	}, nil
}

// DetectFormat guesses the stoplist format from a file extension.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatText
	}
}

// LoadStopwords reads the stopword source described by sc. An empty path
// yields an empty set.
func LoadStopwords(ctx context.Context, sc StoplistConfig) (*stoplist.Set, error) {
	if sc.Path == "" {
		return stoplist.NewSet(nil), nil
	}

	format := sc.Format
	if format == "" {
		format = DetectFormat(sc.Path)
	}

	switch format {
	case FormatYAML:
		sl, err := LoadStoplist(sc.Path)
		if err != nil {
			return nil, err
		}
		return stoplist.NewSet(sl.Terms), nil
	case FormatSQLite:
		st, err := sqlite.OpenExisting(ctx, sc.Path)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		name := sc.Name
		if name == "" {
			name = store.DefaultStoplist
		}
		words, err := st.Stoplist(ctx, name)
		if err != nil {
			return nil, err
		}
		return stoplist.NewSet(words), nil
	default:
		return stoplist.LoadFile(sc.Path, stoplist.LoadOptions{KeepComments: sc.KeepComments})
	}
}
