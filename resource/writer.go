package resource

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
)

// WriteFile writes a fresh resource file containing the given entries in
// sorted key order. Existing content is not consulted; use UpdateFile for
// reconciliation writes.
func WriteFile(path string, entries []rimloc.MergedEntry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootTag)

	sorted := make([]rimloc.MergedEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	for _, e := range sorted {
		emitEntry(root, e)
	}

	return render(doc, path)
}

// UpdateFile merges a plan's entries into an existing file, creating it if
// needed. Unchanged entries are no-ops; updated entries get refreshed
// annotations while their element text (the human translation) is kept;
// added entries are appended in sorted key order. Untouched content,
// including unrelated comments, is preserved. The returned bool reports
// whether the file was rewritten; a plan that touches nothing leaves the
// file byte-for-byte unmodified.
func UpdateFile(path string, entries []rimloc.MergedEntry) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteFile(path, entries); err != nil {
			return false, err
		}
		return true, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		// A broken target file is never clobbered: the write fails, the
		// error is recorded, and the file keeps its content until fixed.
		return false, &rimloc.SerializeError{Path: path, Message: "existing file is not well-formed XML", Cause: err}
	}
	oldRoot := doc.SelectElement(RootTag)
	if oldRoot == nil {
		return false, &rimloc.SerializeError{Path: path, Message: "existing file lacks a " + RootTag + " root"}
	}

	changes := make(map[string]rimloc.MergedEntry)
	for _, e := range entries {
		if e.Action == rimloc.ActionUnchanged {
			continue
		}
		changes[SanitizeKey(e.Key)] = e
	}
	if len(changes) == 0 {
		return false, nil
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	newRoot := out.CreateElement(RootTag)
	for _, attr := range oldRoot.Attr {
		newRoot.CreateAttr(attr.Key, attr.Value)
	}

	consumed := make(map[string]bool)
	var pending []*etree.Comment

	flush := func(dropAnnotations bool) {
		for _, c := range pending {
			if dropAnnotations {
				if prefix, _ := annotation(c.Data); prefix != "" {
					continue
				}
			}
			newRoot.CreateComment(c.Data)
		}
		pending = nil
	}

	for _, child := range oldRoot.Child {
		switch tok := child.(type) {
		case *etree.Comment:
			pending = append(pending, tok)
		case *etree.Element:
			e, ok := changes[tok.Tag]
			if !ok {
				flush(false)
				newRoot.AddChild(tok.Copy())
				continue
			}
			consumed[tok.Tag] = true
			// Superseded annotation comments are dropped; the refreshed
			// pair takes their place. Unrelated comments survive.
			flush(true)
			emitEntry(newRoot, e)
		}
	}
	flush(false)

	var appended []rimloc.MergedEntry
	for key, e := range changes {
		if !consumed[key] {
			appended = append(appended, e)
		}
	}
	sort.Slice(appended, func(i, j int) bool { return appended[i].Key < appended[j].Key })
	for _, e := range appended {
		emitEntry(newRoot, e)
	}

	if err := render(out, path); err != nil {
		return false, err
	}
	return true, nil
}

// emitEntry appends the fixed annotation order: history first, snapshot
// second, then the element itself.
func emitEntry(root *etree.Element, e rimloc.MergedEntry) {
	if e.History != "" {
		root.CreateComment(HistoryPrefix + " " + sanitizeComment(e.History))
	}
	if e.Snapshot != "" {
		root.CreateComment(SnapshotPrefix + " " + sanitizeComment(e.Snapshot))
	}
	el := root.CreateElement(SanitizeKey(e.Key))
	el.SetText(e.Translated)
}

// render serializes the document and commits it atomically: a same-dir
// temp file is renamed over the destination, so a crash mid-write never
// leaves a half-written resource file behind.
func render(doc *etree.Document, path string) error {
	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return &rimloc.SerializeError{Path: path, Message: "serialize XML", Cause: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &rimloc.SerializeError{Path: path, Message: "create directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".rimloc-*.xml")
	if err != nil {
		return &rimloc.SerializeError{Path: path, Message: "create temp file", Cause: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &rimloc.SerializeError{Path: path, Message: "write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &rimloc.SerializeError{Path: path, Message: "close temp file", Cause: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return &rimloc.SerializeError{Path: path, Message: "chmod temp file", Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &rimloc.SerializeError{Path: path, Message: "replace file", Cause: err}
	}
	return nil
}
