package extract

import (
	"github.com/beevik/etree"

	"github.com/RimLocale/rimloc"
)

// ScanDefs extracts source entries from a raw Defs game-data tree. Each
// definition contributes one entry per translatable field from the closed
// DefFieldTags set, keyed "<defName>.<field>". Definitions without a
// defName cannot be addressed by injection and are skipped. Entry paths are
// relative to dir, so StrategyMirrorSource reproduces the Defs layout.
func ScanDefs(dir string, rep *rimloc.Report) ([]rimloc.SourceEntry, error) {
	return scanTree(dir, rep, func(rel string, root *etree.Element, entries *[]rimloc.SourceEntry) {
		for _, def := range root.ChildElements() {
			name := def.SelectElement("defName")
			if name == nil {
				continue
			}
			defName := name.Text()
			if defName == "" {
				continue
			}
			for _, field := range def.ChildElements() {
				if !rimloc.DefFieldTags[field.Tag] {
					continue
				}
				text := field.Text()
				if text == "" {
					continue
				}
				*entries = append(*entries, rimloc.SourceEntry{
					Key:        defName + "." + field.Tag,
					Text:       text,
					Tag:        field.Tag,
					OriginFile: rel,
				})
			}
		}
	})
}
