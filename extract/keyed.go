package extract

import (
	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
)

// ScanKeyed extracts source entries from a Keyed string table. Keys are
// plain identifiers; no field classifier applies.
func ScanKeyed(dir string, rep *rimloc.Report) ([]rimloc.SourceEntry, error) {
	return scanTree(dir, rep, func(rel string, root *etree.Element, entries *[]rimloc.SourceEntry) {
		for _, el := range root.ChildElements() {
			*entries = append(*entries, rimloc.SourceEntry{
				Key:        el.Tag,
				Text:       el.Text(),
				OriginFile: rel,
			})
		}
	})
}
