// Package extract scans source-language trees into flat SourceEntry tuples.
//
// Three scanners cover the three places source text lives: the DefInjected
// reference tree (dotted keys, one element per field), the Keyed string
// table (plain identifier keys), and the raw Defs game-data tree (a closed
// set of translatable fields per definition). Which scanner feeds a pass
// determines which structural strategy can mirror its paths.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
	"github.com/RimLocale/rimloc/resource"
)

// scanTree walks every XML file under root and collects entries via visit.
// Files that fail to parse are recorded and skipped; extraction tolerates
// partial trees the same way the resource parser does.
func scanTree(root string, rep *rimloc.Report, visit func(rel string, xmlRoot *etree.Element, entries *[]rimloc.SourceEntry)) ([]rimloc.SourceEntry, error) {
	files, err := resource.ListFiles(root)
	if err != nil {
		return nil, err
	}

	var entries []rimloc.SourceEntry
	for _, rel := range files {
		doc := etree.NewDocument()
		if err := doc.ReadFromFile(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			if rep != nil {
				rep.RecordParse(rel, "not well-formed XML: "+err.Error())
			}
			continue
		}
		xmlRoot := doc.Root()
		if xmlRoot == nil {
			if rep != nil {
				rep.RecordParse(rel, "empty document")
			}
			continue
		}
		visit(rel, xmlRoot, &entries)
	}
	return entries, nil
}

// fieldTag recovers the field classifier from a dotted key's final segment.
func fieldTag(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		if suffix := key[i+1:]; rimloc.DefFieldTags[suffix] {
			return suffix
		}
	}
	return ""
}
