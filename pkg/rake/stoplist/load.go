package stoplist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/rake/pkg/rake/internalerr"
)

// CommentMarker starts a comment line in a stopword file.
const CommentMarker = "#"

// LoadOptions controls how a stopword source is parsed.
type LoadOptions struct {
	// KeepComments treats lines starting with CommentMarker as ordinary
	// stopword lines.
	KeepComments bool
}

// Load reads a line-oriented stopword source. Every whitespace-separated
// token is an entry; lines whose first non-space character is '#' are skipped.
func Load(r io.Reader) (*Set, error) {
	return LoadWithOptions(r, LoadOptions{})
}

// LoadWithOptions reads a stopword source with explicit options.
func LoadWithOptions(r io.Reader, opts LoadOptions) (*Set, error) {
	if r == nil {
		return nil, fmt.Errorf("stoplist: nil reader: %w", internalerr.ErrResourceUnavailable)
	}

	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !opts.KeepComments && strings.HasPrefix(strings.TrimSpace(line), CommentMarker) {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stoplist: read: %w: %w", internalerr.ErrResourceUnavailable, err)
	}

	return NewSet(words), nil
}

// LoadFile reads a stopword file from disk.
func LoadFile(path string, opts LoadOptions) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stoplist %s: %w: %w", path, internalerr.ErrResourceUnavailable, err)
	}
	defer f.Close()

	set, err := LoadWithOptions(f, opts)
	if err != nil {
		return nil, fmt.Errorf("stoplist %s: %w", path, err)
	}
	return set, nil
}
