package resource

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
)

// ListFiles returns the relative paths of all XML files under root, sorted
// by WalkDir's lexical order. A missing root yields an empty list.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".xml") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// LoadTree loads every resource file under root. Files that fail to parse
// are recorded on the report and skipped; one bad file never aborts the
// pass. Their keys simply go unrepresented until the file is fixed.
func LoadTree(root string, rep *rimloc.Report) ([]rimloc.TargetEntry, error) {
	files, err := ListFiles(root)
	if err != nil {
		return nil, err
	}

	var entries []rimloc.TargetEntry
	for _, rel := range files {
		fileEntries, err := LoadFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
		if err != nil {
			if rep != nil {
				rep.RecordParse(rel, err.Error())
			}
			continue
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// LoadFile parses one resource file. relPath is recorded as each entry's
// OriginFile; it is authoritative for placement on later writes.
func LoadFile(path, relPath string) ([]rimloc.TargetEntry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, &rimloc.ParseError{Path: relPath, Message: "not well-formed XML", Cause: err}
	}

	root := doc.SelectElement(RootTag)
	if root == nil {
		return nil, &rimloc.ParseError{Path: relPath, Message: "missing " + RootTag + " root element"}
	}

	var entries []rimloc.TargetEntry
	var pendingSnapshot, pendingHistory string

	for _, child := range root.Child {
		switch tok := child.(type) {
		case *etree.Comment:
			// Unrelated comments pass through without disturbing a pending
			// annotation pair.
			switch prefix, body := annotation(tok.Data); prefix {
			case SnapshotPrefix:
				pendingSnapshot = body
			case HistoryPrefix:
				pendingHistory = body
			}
		case *etree.Element:
			entries = append(entries, rimloc.TargetEntry{
				Key:        tok.Tag,
				Translated: tok.Text(),
				Tag:        fieldTag(tok.Tag),
				OriginFile: relPath,
				// An entry that predates its first reconciliation has no
				// snapshot; the empty value guarantees the first pass
				// classifies it as updated and flags it for review.
				Snapshot: pendingSnapshot,
				History:  pendingHistory,
			})
			pendingSnapshot = ""
			pendingHistory = ""
		}
	}

	return entries, nil
}

// fieldTag recovers the semantic field classifier from a dotted key when
// its final segment is a known definition field.
func fieldTag(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		if suffix := key[i+1:]; rimloc.DefFieldTags[suffix] {
			return suffix
		}
	}
	return ""
}
