package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "techshop.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLevelsAreRecorded(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "techshop.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("cart snapshot unreadable")
	book.Error("save failed")
	lines := book.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") {
		t.Fatalf("first line missing WARN: %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("second line missing ERROR: %q", lines[1])
	}
}

func TestNilLogbookIsSilent(t *testing.T) {
	var book *Logbook
	book.Info("dropped")
	if lines := book.Tail(5); lines != nil {
		t.Fatalf("nil logbook returned lines: %v", lines)
	}
}
