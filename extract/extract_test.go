package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RimLocale/rimloc"
)

func writeFixture(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDefInjected(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ThingDef/Armor.xml", `<?xml version="1.0" encoding="UTF-8"?>
<LanguageData>
  <Armor_Advanced.label>Advanced armor</Armor_Advanced.label>
  <Armor_Advanced.description>A sturdy suit of plate.</Armor_Advanced.description>
</LanguageData>`)

	entries, err := ScanDefInjected(dir, nil)
	if err != nil {
		t.Fatalf("ScanDefInjected failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	e := entries[0]
	if e.Key != "Armor_Advanced.label" || e.Text != "Advanced armor" {
		t.Errorf("entry = %+v", e)
	}
	if e.Tag != "label" {
		t.Errorf("Tag = %q, want field classifier from key suffix", e.Tag)
	}
	if e.OriginFile != "ThingDef/Armor.xml" {
		t.Errorf("OriginFile = %q", e.OriginFile)
	}
}

func TestScanDefInjected_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Good.xml", `<?xml version="1.0"?>
<LanguageData>
  <a.label>Alpha</a.label>
</LanguageData>`)
	writeFixture(t, dir, "Bad.xml", `<LanguageData><unclosed>`)

	rep := &rimloc.Report{}
	entries, err := ScanDefInjected(dir, rep)
	if err != nil {
		t.Fatalf("ScanDefInjected failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %+v", entries)
	}
	if len(rep.ParseErrors) != 1 {
		t.Errorf("parse errors = %+v", rep.ParseErrors)
	}
}

func TestScanKeyed(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Gameplay.xml", `<?xml version="1.0" encoding="UTF-8"?>
<LanguageData>
  <Greeting>Hello, {0}!</Greeting>
</LanguageData>`)

	entries, err := ScanKeyed(dir, nil)
	if err != nil {
		t.Fatalf("ScanKeyed failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Key != "Greeting" || e.Text != "Hello, {0}!" {
		t.Errorf("entry = %+v", e)
	}
	if e.Tag != "" {
		t.Errorf("Keyed entries carry no field classifier, got %q", e.Tag)
	}
}

func TestScanDefs(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ThingDefs/Armor.xml", `<?xml version="1.0" encoding="UTF-8"?>
<Defs>
  <ThingDef>
    <defName>Armor_Advanced</defName>
    <label>Advanced armor</label>
    <description>A sturdy suit of plate.</description>
    <costList>
      <Steel>80</Steel>
    </costList>
  </ThingDef>
</Defs>`)

	entries, err := ScanDefs(dir, nil)
	if err != nil {
		t.Fatalf("ScanDefs failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (non-text fields skipped)", len(entries))
	}

	if entries[0].Key != "Armor_Advanced.label" || entries[0].Text != "Advanced armor" {
		t.Errorf("entry = %+v", entries[0])
	}
	if entries[0].Tag != "label" {
		t.Errorf("Tag = %q", entries[0].Tag)
	}
	if entries[1].Key != "Armor_Advanced.description" {
		t.Errorf("entry = %+v", entries[1])
	}
}

func TestScanDefs_SkipsDefsWithoutName(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Abstract.xml", `<?xml version="1.0" encoding="UTF-8"?>
<Defs>
  <ThingDef Abstract="True">
    <label>Base armor</label>
  </ThingDef>
  <ThingDef>
    <defName></defName>
    <label>Nameless</label>
  </ThingDef>
</Defs>`)

	entries, err := ScanDefs(dir, nil)
	if err != nil {
		t.Fatalf("ScanDefs failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("definitions without a defName must be skipped: %+v", entries)
	}
}

func TestScanDefs_SkipsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Sparse.xml", `<?xml version="1.0" encoding="UTF-8"?>
<Defs>
  <ThingDef>
    <defName>Sparse</defName>
    <label></label>
    <description>Has text.</description>
  </ThingDef>
</Defs>`)

	entries, err := ScanDefs(dir, nil)
	if err != nil {
		t.Fatalf("ScanDefs failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "Sparse.description" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestScanMissingDirIsEmpty(t *testing.T) {
	entries, err := ScanKeyed(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("Missing directory should scan as empty: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
}
