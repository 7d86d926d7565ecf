package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/config"
)

func TestWatchedFiles(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		stoplist   config.StoplistConfig
		expected   []string
	}{
		{"nothing", "", config.StoplistConfig{}, nil},
		{"config only", "rake.yaml", config.StoplistConfig{}, []string{"rake.yaml"}},
		{"text stoplist", "", config.StoplistConfig{Path: "stop.txt"}, []string{"stop.txt"}},
		{"both", "rake.yaml", config.StoplistConfig{Path: "stop.yaml"}, []string{"rake.yaml", "stop.yaml"}},
		{"sqlite by extension", "", config.StoplistConfig{Path: "stop.db"}, nil},
		{"sqlite by format", "", config.StoplistConfig{Path: "lists", Format: config.FormatSQLite}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Stoplist = tt.stoplist
			got := watchedFiles(tt.configPath, cfg)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("watchedFiles() = %v, want %v", got, tt.expected)
			}
		})
	}
}

type fakeServer struct {
	extractor *rake.Extractor
}

func (f *fakeServer) SetExtractor(e *rake.Extractor) { f.extractor = e }

func TestReloader(t *testing.T) {
	ctx := context.Background()
	stop := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(stop, []byte("of\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := &config.Loader{StoplistPath: stop}
	srv := &fakeServer{}
	reload := (&reloader{ctx: ctx, loader: loader, srv: srv, logger: zap.NewNop()}).reload

	if err := os.WriteFile(stop, []byte("of\nthe\nover\n"), 0644); err != nil {
		t.Fatal(err)
	}
	reload(stop)
	if srv.extractor == nil || srv.extractor.Stopwords().Len() != 3 {
		t.Fatalf("reload did not install the new stoplist")
	}

	current := srv.extractor
	if err := os.Remove(stop); err != nil {
		t.Fatal(err)
	}
	reload(stop)
	if srv.extractor != current {
		t.Error("failed reload should keep the current extractor")
	}
}

type fakeWatcher struct {
	files []string
	calls int
}

func (f *fakeWatcher) SetFiles(paths []string) error {
	f.files = paths
	f.calls++
	return nil
}

func TestReloaderFollowsStoplistPath(t *testing.T) {
	dir := t.TempDir()
	stop1 := filepath.Join(dir, "stop1.txt")
	stop2 := filepath.Join(dir, "stop2.txt")
	cfgPath := filepath.Join(dir, "rake.yaml")
	if err := os.WriteFile(stop1, []byte("of\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stop2, []byte("of\nthe\n"), 0644); err != nil {
		t.Fatal(err)
	}
	writeConfig := func(stop string) {
		t.Helper()
		if err := os.WriteFile(cfgPath, []byte("stoplist:\n  path: "+stop+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeConfig(stop1)

	srv := &fakeServer{}
	fw := &fakeWatcher{}
	r := &reloader{
		ctx:        context.Background(),
		configPath: cfgPath,
		loader:     &config.Loader{ConfigPath: cfgPath},
		srv:        srv,
		watcher:    fw,
		logger:     zap.NewNop(),
	}

	writeConfig(stop2)
	r.reload(cfgPath)
	if srv.extractor == nil || srv.extractor.Stopwords().Len() != 2 {
		t.Fatalf("reload did not load %s", stop2)
	}
	if want := []string{cfgPath, stop2}; !reflect.DeepEqual(fw.files, want) {
		t.Errorf("watched files = %v, want %v", fw.files, want)
	}

	if err := os.WriteFile(cfgPath, []byte("stoplist: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r.reload(cfgPath)
	if fw.calls != 1 {
		t.Errorf("failed reload should not touch the watch set, got %d SetFiles calls", fw.calls)
	}
}
