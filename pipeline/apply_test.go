package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RimLocale/rimloc"
)

func TestApplyTranslations(t *testing.T) {
	root := fixtureMod(t)
	fixtureTarget(t, root)
	langRoot := filepath.Join(root, "Languages", "ChineseSimplified")

	entries := []rimloc.MergedEntry{
		{
			Key:        "Armor_Advanced.description",
			Translated: "一套坚固的板甲。",
			Snapshot:   "A sturdy suit of plate.",
			History:    `prev translation "一套破旧的板甲。"; prev source "A worn suit of plate."; new source "A sturdy suit of plate."; updated 2026-03-01`,
			OriginFile: "DefInjected/Armor/Armor.xml",
			Action:     rimloc.ActionUpdated,
		},
	}

	rep, err := ApplyTranslations(context.Background(), langRoot, entries, 2, nil)
	if err != nil {
		t.Fatalf("ApplyTranslations failed: %v", err)
	}
	if rep.FilesWritten != 1 {
		t.Errorf("FilesWritten = %d, want 1", rep.FilesWritten)
	}

	out := readFile(t, filepath.Join(langRoot, "DefInjected", "Armor", "Armor.xml"))
	if !strings.Contains(out, "一套坚固的板甲。") {
		t.Errorf("Applied translation missing:\n%s", out)
	}
	if !strings.Contains(out, "EN: A sturdy suit of plate.") {
		t.Error("Snapshot annotation missing after apply")
	}
	if !strings.Contains(out, "高级护甲") {
		t.Error("Untouched sibling entry lost")
	}
}

func TestApplyTranslations_NoPlacement(t *testing.T) {
	root := t.TempDir()

	entries := []rimloc.MergedEntry{
		{Key: "Orphan.label", Translated: "x", Action: rimloc.ActionUpdated},
	}

	rep, err := ApplyTranslations(context.Background(), root, entries, 1, nil)
	if err != nil {
		t.Fatalf("ApplyTranslations failed: %v", err)
	}
	if len(rep.Rejected) != 1 {
		t.Errorf("Rejected = %v, want one entry without placement", rep.Rejected)
	}
	if rep.FilesWritten != 0 {
		t.Errorf("FilesWritten = %d, want 0", rep.FilesWritten)
	}
}
