package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RimLocale/rimloc"
)

func TestWritePlan_ReadPlan_RoundTrip(t *testing.T) {
	entries := []rimloc.MergedEntry{
		{
			Key:        "Armor_Advanced.description",
			Translated: "一套破旧的板甲。",
			Tag:        "description",
			OriginFile: "DefInjected/Armor/Armor.xml",
			Snapshot:   "A sturdy suit of plate.",
			History:    `prev translation "一套破旧的板甲。"; prev source "A worn suit of plate."; new source "A sturdy suit of plate."; updated 2026-03-01`,
			Action:     rimloc.ActionUpdated,
		},
		{
			Key:        "Helmet_Simple.label",
			Translated: "Simple helmet",
			Tag:        "label",
			OriginFile: "DefInjected/Armor/Armor.xml",
			Snapshot:   "Simple helmet",
			History:    `added "Simple helmet" on 2026-03-01`,
			Action:     rimloc.ActionAdded,
		},
	}

	var buf bytes.Buffer
	if err := WritePlan(&buf, entries); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}

	got, err := ReadPlan(&buf)
	if err != nil {
		t.Fatalf("ReadPlan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadPlan returned %d entries, want 2", len(got))
	}

	if got[0].Key != entries[0].Key || got[0].Translated != entries[0].Translated ||
		got[0].Snapshot != entries[0].Snapshot || got[0].History != entries[0].History {
		t.Errorf("Round trip mangled entry: %+v", got[0])
	}

	// Action is inferred: text differing from snapshot means a kept
	// translation, text equal to snapshot means a placeholder.
	if got[0].Action != rimloc.ActionUpdated {
		t.Errorf("got[0].Action = %v, want updated", got[0].Action)
	}
	if got[1].Action != rimloc.ActionAdded {
		t.Errorf("got[1].Action = %v, want added", got[1].Action)
	}
}

func TestWritePlan_BOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlan(&buf, nil); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\xEF\xBB\xBF") {
		t.Error("Plan CSV should start with a UTF-8 BOM")
	}
	if !strings.Contains(buf.String(), "key,text,tag,file,en,history") {
		t.Errorf("Header missing: %q", buf.String())
	}
}

func TestReadPlan_FiveColumns(t *testing.T) {
	// History column is optional on the way back in.
	in := "key,text,tag,file,en\nGreeting,你好,,Keyed/Gameplay.xml,Hello\n"

	got, err := ReadPlan(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadPlan failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0].History != "" {
		t.Errorf("History should be empty, got %q", got[0].History)
	}
	if got[0].Action != rimloc.ActionUpdated {
		t.Errorf("Action = %v, want updated", got[0].Action)
	}
}

func TestReadPlan_TooFewColumns(t *testing.T) {
	in := "key,text,tag\nGreeting,你好,\n"
	if _, err := ReadPlan(strings.NewReader(in)); err == nil {
		t.Error("Expected error for missing columns")
	}
}

func TestReadPlan_Empty(t *testing.T) {
	got, err := ReadPlan(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadPlan failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestReadTranslations_StripsBOM(t *testing.T) {
	in := "\xEF\xBB\xBFkey,text,tag,file,en\nGreeting,你好,,Keyed/Gameplay.xml,Hello\n"

	got, err := ReadTranslations(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTranslations failed: %v", err)
	}
	if len(got) != 1 || got[0].Key != "Greeting" {
		t.Errorf("BOM not handled: %+v", got)
	}
}

func TestWriteSource(t *testing.T) {
	entries := []rimloc.SourceEntry{
		{Key: "Armor_Advanced.label", Text: "Advanced armor", Tag: "label", OriginFile: "Armor/Armor.xml"},
	}

	var buf bytes.Buffer
	if err := WriteSource(&buf, entries); err != nil {
		t.Fatalf("WriteSource failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "key,text,tag,file") {
		t.Errorf("Header missing: %q", out)
	}
	if !strings.Contains(out, "Armor_Advanced.label,Advanced armor,label,Armor/Armor.xml") {
		t.Errorf("Row missing: %q", out)
	}
}
