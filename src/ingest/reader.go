// Package ingest is the input boundary: it scans directories for supported
// files and hands the pipeline a Document carrying identity, extracted
// text and (for tabular sources) parsed rows. Binary formats are out of
// scope; whatever produced the text files already flattened them.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/username/finsift/src/identity"
	"github.com/username/finsift/src/logger"
)

// SupportedExtensions lists the file types the scanner picks up.
var SupportedExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

// Document is one ingestible file: content identity, name, full text and,
// for CSV sources, one map per data row keyed by lowercased column name.
type Document struct {
	Identity string
	Name     string
	Path     string
	Text     string
	Rows     []map[string]string
}

// IsTabular reports whether the document carries pre-parsed rows.
func (d *Document) IsTabular() bool {
	return len(d.Rows) > 0
}

// ScanDir returns the supported files directly under dir, sorted by name
// for deterministic batch order. Files over maxSizeBytes are skipped with
// a warning.
func ScanDir(dir string, maxSizeBytes int64) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !SupportedExtensions[ext] {
			continue
		}
		if maxSizeBytes > 0 {
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stating %s: %w", entry.Name(), err)
			}
			if info.Size() > maxSizeBytes {
				logger.L.Warn("skipping oversized file",
					"file", entry.Name(), "sizeBytes", info.Size(), "maxBytes", maxSizeBytes)
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadDocument loads one file into a Document. CSV files yield both the
// raw text (for classification) and parsed rows (for the transaction
// extractor); identity is always computed over the raw bytes.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := &Document{
		Identity: identity.FromBytes(data),
		Name:     filepath.Base(path),
		Path:     path,
		Text:     string(data),
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err := parseCSVRows(string(data))
		if err != nil {
			// A malformed CSV still flows through text extraction.
			logger.L.Warn("failed to parse CSV rows, falling back to text",
				"file", doc.Name, "error", err)
		} else {
			doc.Rows = rows
		}
	}
	return doc, nil
}

// parseCSVRows maps each data row by its lowercased, underscored header.
func parseCSVRows(text string) ([]map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
