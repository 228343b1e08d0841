// Package csvio implements the CSV exchange format used with translation
// collaborators: five columns in (key, text, tag, file, en), six columns
// out of a merge pass (adding the history note). Files are written with a
// UTF-8 BOM so spreadsheet tools open CJK content correctly.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/RimLocale/rimloc"
)

// bom is the UTF-8 byte order mark, stripped on read and written for the
// benefit of spreadsheet tools.
const bom = "\xEF\xBB\xBF"

var (
	sourceHeader = []string{"key", "text", "tag", "file"}
	planHeader   = []string{"key", "text", "tag", "file", "en", "history"}
)

// WriteSource writes extracted source entries as a four-column CSV.
func WriteSource(w io.Writer, entries []rimloc.SourceEntry) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(sourceHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Key, e.Text, e.Tag, e.OriginFile}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlan writes merged entries as a six-column CSV, the output side of
// the exchange format.
func WritePlan(w io.Writer, entries []rimloc.MergedEntry) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(planHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Key, e.Translated, e.Tag, e.OriginFile, e.Snapshot, e.History}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPlan reads a six-column plan CSV back into merged entries. A row
// whose text still equals its snapshot is a placeholder awaiting its first
// translation (added); any other row carries an existing translation that
// was flagged for review (updated).
func ReadPlan(r io.Reader) ([]rimloc.MergedEntry, error) {
	records, err := readRecords(r, 5)
	if err != nil {
		return nil, err
	}

	var entries []rimloc.MergedEntry
	for _, rec := range records {
		e := rimloc.MergedEntry{
			Key:        rec[0],
			Translated: rec[1],
			Tag:        rec[2],
			OriginFile: rec[3],
			Snapshot:   rec[4],
		}
		if len(rec) > 5 {
			e.History = rec[5]
		}
		if e.Translated == e.Snapshot {
			e.Action = rimloc.ActionAdded
		} else {
			e.Action = rimloc.ActionUpdated
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadTranslations reads a translated CSV (five columns, history optional)
// into target entries ready to be applied back onto the resource tree.
func ReadTranslations(r io.Reader) ([]rimloc.TargetEntry, error) {
	records, err := readRecords(r, 5)
	if err != nil {
		return nil, err
	}

	var entries []rimloc.TargetEntry
	for _, rec := range records {
		e := rimloc.TargetEntry{
			Key:        rec[0],
			Translated: rec[1],
			Tag:        rec[2],
			OriginFile: rec[3],
			Snapshot:   rec[4],
		}
		if len(rec) > 5 {
			e.History = rec[5]
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readRecords parses CSV rows, skips the header, strips a BOM, and
// enforces a minimum column count.
func readRecords(r io.Reader, minFields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // history column is optional

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	records[0][0] = strings.TrimPrefix(records[0][0], bom)
	if strings.EqualFold(records[0][0], "key") {
		records = records[1:]
	}

	for i, rec := range records {
		if len(rec) < minFields {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, minFields, len(rec))
		}
	}
	return records, nil
}
