package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/htmltext"
	"github.com/cognicore/rake/internal/logging"
	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/report"
)

type options struct {
	input          string
	configPath     string
	stoplistPath   string
	stoplistFormat string
	html           bool
	top            string
	jsonOut        bool
	explain        bool
	minWordLength  int
	maxWords       int
	debug          bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "Text file to read (default: stdin)")
	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&opts.stoplistPath, "stoplist", "", "Stopword list (text, YAML or SQLite)")
	flag.StringVar(&opts.stoplistFormat, "stoplist-format", "", "Stoplist format: text, yaml or sqlite (default: by extension)")
	flag.BoolVar(&opts.html, "html", false, "Input is HTML")
	flag.StringVar(&opts.top, "top", "top", "Keywords to print: top (configured fraction), third, all or a count")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print a JSON report")
	flag.BoolVar(&opts.explain, "explain", false, "Include word score breakdowns in the JSON report")
	flag.IntVar(&opts.minWordLength, "min-word-length", -1, "Ignore words of this length or shorter (default: from config)")
	flag.IntVar(&opts.maxWords, "max-words", -1, "Drop phrases with more words (0 = unlimited, default: from config)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger, err := logging.New(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal("extraction failed", zap.Error(err))
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	sel, err := report.ParseSelection(opts.top)
	if err != nil {
		return err
	}

	loader := config.Loader{
		ConfigPath:     opts.configPath,
		StoplistPath:   opts.stoplistPath,
		StoplistFormat: opts.stoplistFormat,
		UseEnv:         true,
		Override:       opts.apply,
	}
	comp, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debug("config loaded",
		zap.String("stoplist", comp.Config.Stoplist.Path),
		zap.Int("stopwords", comp.Stopwords.Len()),
	)

	text, err := readInput(opts.input, stdin, opts.html)
	if err != nil {
		return err
	}

	res := comp.Extractor.Extract(text)
	rep, err := report.New().Build(comp.Extractor, res, report.Options{Selection: sel, Explain: opts.explain})
	if err != nil {
		return err
	}
	logger.Debug("extracted", zap.String("id", rep.ID), zap.Int("keywords", len(rep.Keywords)))

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeText(stdout, rep)
}

// apply copies command-line overrides into cfg.
func (o options) apply(cfg *config.Config) {
	if o.minWordLength >= 0 {
		cfg.Tokenizer.MinWordLength = o.minWordLength
	}
	if o.maxWords >= 0 {
		cfg.Phrase.MaxWords = o.maxWords
	}
	if o.debug {
		cfg.Debug = true
	}
}

func readInput(path string, stdin io.Reader, html bool) (string, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if html {
		text, err := htmltext.Extract(r)
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeText prints one "score<TAB>phrase" line per selected keyword.
func writeText(w io.Writer, rep report.Report) error {
	var b strings.Builder
	for _, kw := range rep.Top {
		fmt.Fprintf(&b, "%.4f\t%s\n", kw.Score, kw.Phrase)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
