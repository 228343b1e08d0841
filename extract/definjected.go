package extract

import (
	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
)

// ScanDefInjected extracts source entries from a DefInjected reference
// tree: every element under LanguageData is one entry, keyed by its element
// name. Entry paths are relative to dir, so a pass using
// StrategyMirrorReference reproduces this tree's layout key for key.
func ScanDefInjected(dir string, rep *rimloc.Report) ([]rimloc.SourceEntry, error) {
	return scanTree(dir, rep, func(rel string, root *etree.Element, entries *[]rimloc.SourceEntry) {
		for _, el := range root.ChildElements() {
			*entries = append(*entries, rimloc.SourceEntry{
				Key:        el.Tag,
				Text:       el.Text(),
				Tag:        fieldTag(el.Tag),
				OriginFile: rel,
			})
		}
	})
}
