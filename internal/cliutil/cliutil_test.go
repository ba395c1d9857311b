package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ab1")
	b := filepath.Join(dir, "b.ab1")
	_ = os.WriteFile(a, []byte("ABIF"), 0o644)
	_ = os.WriteFile(b, []byte("ABIF"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.ab1"), "-", "plain.scf"})
	if err != nil || len(got) != 4 {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if got[2] != "-" || got[3] != "plain.scf" {
		t.Fatalf("passthrough broken: %v", got)
	}
}

func TestExpandPositionalsNoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.scf")}); err == nil {
		t.Fatal("want error for unmatched glob")
	}
}
