package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/logging"
	"github.com/cognicore/rake/internal/server"
	"github.com/cognicore/rake/internal/watch"
	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/config"
)

func main() {
	var (
		configPath     = flag.String("config", "", "YAML config file")
		stoplistPath   = flag.String("stoplist", "", "Stopword list (text, YAML or SQLite)")
		stoplistFormat = flag.String("stoplist-format", "", "Stoplist format: text, yaml or sqlite")
		addr           = flag.String("addr", "", "Listen address (default: server.host:server.port from config)")
		watchFiles     = flag.Bool("watch", false, "Reload when the config or stoplist file changes")
		debug          = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	loader := &config.Loader{
		ConfigPath:     *configPath,
		StoplistPath:   *stoplistPath,
		StoplistFormat: *stoplistFormat,
		UseEnv:         true,
	}
	ctx := context.Background()
	comp, err := loader.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	debugMode := comp.Config.Debug || *debug
	logger, err := logging.New(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", *configPath),
		zap.String("stoplist", comp.Config.Stoplist.Path),
		zap.Int("stopwords", comp.Stopwords.Len()),
		zap.Bool("debug", debugMode),
	)

	listen := *addr
	if listen == "" {
		listen = comp.Config.Addr()
	}
	srv := server.NewServer(comp.Extractor, listen, logger)

	watchCtx, watchCancel := context.WithCancel(ctx)
	defer watchCancel()
	if *watchFiles {
		files := watchedFiles(*configPath, comp.Config)
		if len(files) == 0 {
			logger.Warn("nothing to watch: no config file or text stoplist")
		} else {
			r := &reloader{ctx: watchCtx, configPath: *configPath, loader: loader, srv: srv, logger: logger}
			w, err := watch.NewWatcher(files, r.reload, watch.WithLogger(logger))
			if err != nil {
				logger.Fatal("Failed to create watcher", zap.Error(err))
			}
			r.watcher = w
			if err := w.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start watcher", zap.Error(err))
			}
			logger.Info("watching for changes", zap.Strings("files", files))
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// watchedFiles lists the files whose changes trigger a reload. SQLite
// stoplists are excluded: their writes land in the WAL file.
func watchedFiles(configPath string, cfg *config.Config) []string {
	var files []string
	if configPath != "" {
		files = append(files, configPath)
	}
	if p := cfg.Stoplist.Path; p != "" {
		format := cfg.Stoplist.Format
		if format == "" {
			format = config.DetectFormat(p)
		}
		if format != config.FormatSQLite {
			files = append(files, p)
		}
	}
	return files
}

type extractorSetter interface {
	SetExtractor(e *rake.Extractor)
}

type fileSetter interface {
	SetFiles(paths []string) error
}

// reloader rebuilds the extractor from loader and installs it in srv.
// On failure the running extractor is kept. After a successful reload the
// watcher follows the stoplist path named by the new config.
type reloader struct {
	ctx        context.Context
	configPath string
	loader     *config.Loader
	srv        extractorSetter
	watcher    fileSetter
	logger     *zap.Logger
}

func (r *reloader) reload(path string) {
	comp, err := r.loader.Load(r.ctx)
	if err != nil {
		r.logger.Warn("reload failed, keeping current extractor", zap.String("path", path), zap.Error(err))
		return
	}
	r.srv.SetExtractor(comp.Extractor)
	r.logger.Info("reloaded", zap.String("path", path), zap.Int("stopwords", comp.Stopwords.Len()))

	if r.watcher == nil {
		return
	}
	files := watchedFiles(r.configPath, comp.Config)
	if err := r.watcher.SetFiles(files); err != nil {
		r.logger.Warn("failed to update watched files", zap.Strings("files", files), zap.Error(err))
	}
}
