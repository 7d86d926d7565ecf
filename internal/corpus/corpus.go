// Package corpus reads documents with known keywords from JSON Lines files.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/htmltext"
	"github.com/cognicore/rake/internal/logging"
)

// Document is one corpus entry.
type Document struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	HTML     bool     `json:"html"` // Text holds markup
	Keywords []string `json:"keywords"`
}

// Content returns the title and body as one text, with markup removed.
func (d Document) Content() string {
	body := d.Text
	if d.HTML {
		body = htmltext.FromString(body)
	}
	switch {
	case d.Title == "":
		return body
	case body == "":
		return d.Title
	default:
		return d.Title + ". " + body
	}
}

// LoadFromJSONL loads documents from a JSONL file. Malformed lines are
// logged and skipped.
func LoadFromJSONL(path string, logger *zap.Logger) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	docs, err := Read(f, logging.OrNop(logger).With(zap.String("path", path)))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", path)
	}
	return docs, nil
}

// Read decodes one document per non-blank line of r.
func Read(r io.Reader, logger *zap.Logger) ([]Document, error) {
	logger = logging.OrNop(logger)

	var docs []Document
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			logger.Warn("skipping malformed JSON", zap.Int("line", line), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
