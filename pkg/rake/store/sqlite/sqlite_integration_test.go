package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cognicore/rake/pkg/rake/internalerr"
)

func TestSQLiteStoplistRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	if err := st.UpsertStoplist(ctx, "smart", []string{"of", "The", "over", "the"}); err != nil {
		t.Fatalf("UpsertStoplist: %v", err)
	}

	got, err := st.Stoplist(ctx, "smart")
	if err != nil {
		t.Fatalf("Stoplist: %v", err)
	}
	want := []string{"of", "the", "over"}
	if len(got) != len(want) {
		t.Fatalf("Stoplist = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stoplist[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteStoplistReplace(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	st.UpsertStoplist(ctx, "default", []string{"a", "b", "c"})
	if err := st.UpsertStoplist(ctx, "default", []string{"d"}); err != nil {
		t.Fatal(err)
	}

	got, err := st.Stoplist(ctx, "default")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "d" {
		t.Errorf("after replace: %v", got)
	}
}

func TestSQLiteEmptyListExists(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if err := st.UpsertStoplist(ctx, "empty", nil); err != nil {
		t.Fatal(err)
	}
	got, err := st.Stoplist(ctx, "empty")
	if err != nil {
		t.Fatalf("empty list should exist: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no words, got %v", got)
	}
}

func TestSQLiteMissingList(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	_, err = st.Stoplist(ctx, "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = st.UpsertStoplist(ctx, "", []string{"a"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSQLiteStoplists(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	st.UpsertStoplist(ctx, "zeta", []string{"a", "b"})
	st.UpsertStoplist(ctx, "alpha", nil)

	infos, err := st.Stoplists(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 lists, got %+v", infos)
	}
	if infos[0].Name != "alpha" || infos[0].Count != 0 {
		t.Errorf("alpha info = %+v", infos[0])
	}
	if infos[1].Name != "zeta" || infos[1].Count != 2 {
		t.Errorf("zeta info = %+v", infos[1])
	}
	if infos[1].UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be parsed")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	st.UpsertStoplist(ctx, "default", []string{"of", "the"})
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	got, err := st.Stoplist(ctx, "default")
	if err != nil || len(got) != 2 {
		t.Errorf("reopened store: %v, %v", got, err)
	}
}

func TestSQLiteConcurrentReads(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if err := st.UpsertStoplist(ctx, "default", []string{"of", "the", "over"}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.Stoplist(ctx, "default"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent read: %v", err)
	}
}

func TestOpenExistingMissingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "missing.db")

	_, err := OpenExisting(ctx, dbPath)
	if !errors.Is(err, internalerr.ErrResourceUnavailable) {
		t.Errorf("expected ErrResourceUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Errorf("OpenExisting created %s", dbPath)
	}

	if _, err := OpenExisting(ctx, dir); !errors.Is(err, internalerr.ErrResourceUnavailable) {
		t.Errorf("directory: expected ErrResourceUnavailable, got %v", err)
	}
}

func TestOpenExisting(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	st.UpsertStoplist(ctx, "default", []string{"of"})
	st.Close()

	st, err = OpenExisting(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenExisting: %v", err)
	}
	defer st.Close()
	if words, err := st.Stoplist(ctx, "default"); err != nil || len(words) != 1 {
		t.Errorf("Stoplist = %v, %v", words, err)
	}
}
