package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/corpus"
	"github.com/cognicore/rake/internal/logging"
	"github.com/cognicore/rake/pkg/rake/analytics"
	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

type options struct {
	input          string
	stoplistPath   string
	stoplistFormat string
	out            string
	outFormat      string
	name           string
	merge          bool
	limit          int
	thresholds     stoplist.Thresholds
	jsonOut        bool
	list           bool
}

type candidateJSON struct {
	Token        string  `json:"token"`
	Score        float64 `json:"score"`
	DF           int64   `json:"df"`
	KeywordFreq  int64   `json:"keyword_freq"`
	AdjacentFreq int64   `json:"adjacent_freq"`
}

type summary struct {
	TotalDocs  int64           `json:"total_docs"`
	Candidates []candidateJSON `json:"candidates"`
	Written    int             `json:"written"`
}

func main() {
	defaults := stoplist.DefaultThresholds()
	var opts options
	flag.StringVar(&opts.input, "input", "", "JSONL corpus with text and keywords (required)")
	flag.StringVar(&opts.stoplistPath, "stoplist", "", "Existing stoplist to extend")
	flag.StringVar(&opts.stoplistFormat, "stoplist-format", "", "Format of -stoplist: text, yaml or sqlite")
	flag.StringVar(&opts.out, "out", "", "Output file (default: stdout)")
	flag.StringVar(&opts.outFormat, "format", "", "Output format: text or sqlite (default: by extension)")
	flag.StringVar(&opts.name, "name", store.DefaultStoplist, "List name for SQLite output")
	flag.BoolVar(&opts.merge, "merge", true, "Include the words of -stoplist in the output")
	flag.IntVar(&opts.limit, "limit", 0, "Maximum number of new stopwords (0 = all)")
	flag.Int64Var(&opts.thresholds.MinAdjacent, "min-adjacent", defaults.MinAdjacent, "Minimum adjacency count")
	flag.Int64Var(&opts.thresholds.MinDF, "min-df", defaults.MinDF, "Minimum document frequency")
	flag.Float64Var(&opts.thresholds.Ratio, "ratio", defaults.Ratio, "Adjacency must exceed ratio * keyword frequency")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print a JSON summary of the candidates")
	flag.BoolVar(&opts.list, "list", false, "List the stoplists stored in the SQLite file given by -out and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if opts.list {
		if err := runList(context.Background(), opts.out, os.Stdout); err != nil {
			logger.Fatal("list stoplists failed", zap.Error(err))
		}
		return
	}
	if opts.input == "" {
		logger.Fatal("-input required")
	}

	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Fatal("stoplist generation failed", zap.Error(err))
	}
}

func run(ctx context.Context, opts options, stdout io.Writer, logger *zap.Logger) error {
	docs, err := corpus.LoadFromJSONL(opts.input, logger)
	if err != nil {
		return fmt.Errorf("load docs: %w", err)
	}

	existing, err := config.LoadStopwords(ctx, config.StoplistConfig{
		Path:   opts.stoplistPath,
		Format: opts.stoplistFormat,
		Name:   opts.name,
	})
	if err != nil {
		return fmt.Errorf("load stoplist: %w", err)
	}

	analyzer := analytics.NewAnalyzer(nil)
	for _, doc := range docs {
		analyzer.Process(doc.Content(), doc.Keywords)
	}
	stats := analyzer.Snapshot()
	logger.Info("corpus analyzed",
		zap.Int64("docs", stats.TotalDocs),
		zap.Int("words", len(stats.TokenDF)),
		zap.Int("existing_stopwords", existing.Len()),
	)

	candidates, err := analytics.Suggest(ctx, analytics.NewStopwordStatsProvider(stats), existing, opts.thresholds)
	if err != nil {
		return err
	}
	if opts.limit > 0 && len(candidates) > opts.limit {
		candidates = candidates[:opts.limit]
	}

	words := stoplist.Tokens(candidates)
	if opts.merge {
		words = stoplist.Merge(existing, stoplist.NewSet(words)).Words()
	}

	if err := write(ctx, opts, words, stats.TotalDocs, stdout); err != nil {
		return err
	}
	logger.Info("stoplist written",
		zap.Int("candidates", len(candidates)),
		zap.Int("words", len(words)),
		zap.String("out", opts.out),
	)

	if opts.jsonOut {
		return writeSummary(stdout, stats.TotalDocs, candidates, len(words))
	}
	return nil
}

func write(ctx context.Context, opts options, words []string, totalDocs int64, stdout io.Writer) error {
	format := opts.outFormat
	if format == "" && opts.out != "" {
		format = config.DetectFormat(opts.out)
	}

	switch format {
	case config.FormatSQLite:
		st, err := sqlite.OpenSQLite(ctx, opts.out)
		if err != nil {
			return err
		}
		defer st.Close()
		return save(ctx, st, opts.name, words)
	case "", config.FormatText:
		if opts.out == "" {
			if opts.jsonOut {
				return nil
			}
			return writeText(stdout, words, totalDocs)
		}
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		if err := writeText(f, words, totalDocs); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// save stores words as the named list of st.
func save(ctx context.Context, st store.Store, name string, words []string) error {
	if err := st.UpsertStoplist(ctx, name, words); err != nil {
		return fmt.Errorf("save stoplist %q: %w", name, err)
	}
	return nil
}

func runList(ctx context.Context, path string, w io.Writer) error {
	if path == "" {
		return fmt.Errorf("-out must name a SQLite file")
	}
	st, err := sqlite.OpenExisting(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()
	return listStoplists(ctx, st, w)
}

// listStoplists prints one "name<TAB>count<TAB>updated" line per list.
func listStoplists(ctx context.Context, st store.Store, w io.Writer) error {
	infos, err := st.Stoplists(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.Count, info.UpdatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, words []string, totalDocs int64) error {
	if _, err := fmt.Fprintf(w, "%s generated by rake-stoplist from %d documents\n", stoplist.CommentMarker, totalDocs); err != nil {
		return err
	}
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, totalDocs int64, candidates []stoplist.Candidate, written int) error {
	out := summary{
		TotalDocs:  totalDocs,
		Candidates: make([]candidateJSON, 0, len(candidates)),
		Written:    written,
	}
	for _, c := range candidates {
		out.Candidates = append(out.Candidates, candidateJSON{
			Token:        c.Token,
			Score:        c.Score,
			DF:           c.Stats.DF,
			KeywordFreq:  c.Stats.KeywordFreq,
			AdjacentFreq: c.Stats.AdjacentFreq,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
