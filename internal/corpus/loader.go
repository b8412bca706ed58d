// Package corpus loads and validates the snippet corpus.
//
// The corpus is a JSON array of {id, title, content} records. It is read
// once, in full, before indexing starts; the array order defines the row
// order of the document matrix.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

// Load reads the snippet corpus from a JSON file.
func Load(path string) ([]domain.Snippet, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCorpusLoad, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON snippet array.
func Parse(data []byte) ([]domain.Snippet, error) {
	var snippets []domain.Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", domain.ErrCorpusLoad, err)
	}
	if err := validate(snippets); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusLoad, err)
	}
	return snippets, nil
}

func validate(snippets []domain.Snippet) error {
	if len(snippets) == 0 {
		return errors.New("corpus is empty")
	}
	seen := make(map[string]struct{}, len(snippets))
	for i, s := range snippets {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("snippet %d has an empty id", i)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate snippet id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
