package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreZeroValueCurrent(t *testing.T) {
	var store Store
	snap := store.Current()
	if snap == nil {
		t.Fatal("Current must never return nil")
	}
	if len(snap.Tenders) != 0 || len(snap.Offers) != 0 {
		t.Fatalf("zero store not empty: %+v", snap)
	}
}

func TestReloadMissingDirsYieldEmptySnapshot(t *testing.T) {
	var store Store
	snap, err := store.Reload(filepath.Join(t.TempDir(), "no"), filepath.Join(t.TempDir(), "tampoco"))
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(snap.Tenders) != 0 || len(snap.Offers) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if snap.Version != 1 {
		t.Fatalf("version = %d", snap.Version)
	}
	if snap.LoadedAt.IsZero() {
		t.Fatal("LoadedAt not set")
	}
}

func TestReloadSkipsUnreadableFilesAndBumpsVersion(t *testing.T) {
	dir := t.TempDir()
	// Unsupported extension is ignored outright; a corrupt .docx is
	// skipped with a log line, never aborting the reload.
	if err := os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "roto.docx"), []byte("no es un zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	var store Store
	snap, err := store.Reload(dir, "")
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(snap.Tenders) != 0 {
		t.Fatalf("corrupt file should be skipped, got %+v", snap.Tenders)
	}

	snap2, err := store.Reload(dir, "")
	if err != nil {
		t.Fatalf("second Reload: %v", err)
	}
	if snap2.Version != snap.Version+1 {
		t.Fatalf("version did not advance: %d -> %d", snap.Version, snap2.Version)
	}
	if got := store.Current(); got.Version != snap2.Version {
		t.Fatalf("Current() = version %d, want %d", got.Version, snap2.Version)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planilla.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
