package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/RimLocale/rimloc"
)

// ExportFormat is the JSON structure for cache export/import. Exported
// caches seed a fresh cache on another machine or survive a Redis flush.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is a single cache entry.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Export writes the cache contents to w in JSON format.
func Export(w io.Writer, c ExportableCache, metadata map[string]string) error {
	var entries []ExportEntry
	for _, key := range c.Keys() {
		val, ok := c.Get(key)
		if !ok {
			continue // expired between Keys and Get
		}
		entries = append(entries, ExportEntry{Key: key, Value: val})
	}

	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the cache to a file.
func ExportToFile(path string, c ExportableCache, metadata map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Export(f, c, metadata)
}

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Import reads cache entries from r and loads them into c.
func Import(r io.Reader, c rimloc.TranslationCache) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if err := c.Set(entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}
	return result, nil
}

// ImportFromFile imports cache entries from a file.
func ImportFromFile(path string, c rimloc.TranslationCache) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Import(f, c)
}
