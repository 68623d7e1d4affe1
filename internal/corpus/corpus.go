// Package corpus loads and holds the historical document base: past
// tenders and the technical offers written for them. Consumers always
// see an immutable snapshot; reloads swap the snapshot atomically.
package corpus

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/guxtech/ofertagen/internal/extract"
	"github.com/guxtech/ofertagen/internal/segment"
)

// Entry is one ingested document with its provenance.
type Entry struct {
	Origin string            `json:"origin_filename"`
	Doc    *segment.Document `json:"datos"`
}

// Snapshot is an immutable view of the loaded corpus.
type Snapshot struct {
	Tenders  []Entry   `json:"licitaciones"`
	Offers   []Entry   `json:"ofertas"`
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Store holds the current corpus snapshot. The zero value is usable
// and starts empty.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

// Current returns the latest snapshot, never nil.
func (s *Store) Current() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return &Snapshot{}
}

// Reload scans both directories, builds a fresh snapshot and swaps it
// in. Per-file failures are logged and skipped; only directory-level
// failures abort the reload, leaving the previous snapshot in place.
func (s *Store) Reload(tendersDir, offersDir string) (*Snapshot, error) {
	tenders, err := loadDir(tendersDir)
	if err != nil {
		return nil, fmt.Errorf("load tenders: %w", err)
	}
	offers, err := loadDir(offersDir)
	if err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}
	snap := &Snapshot{
		Tenders:  tenders,
		Offers:   offers,
		Version:  s.version.Add(1),
		LoadedAt: time.Now(),
	}
	s.current.Store(snap)
	return snap, nil
}

// LoadFile ingests a single document.
func LoadFile(path string) (Entry, error) {
	text, err := extract.Extract(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Origin: filepath.Base(path),
		Doc:    segment.Segment(text),
	}, nil
}

func loadDir(dir string) ([]Entry, error) {
	if dir == "" {
		return nil, nil
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.IsDir() && extract.IsSupported(de.Name()) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	var entries []Entry
	for _, name := range names {
		entry, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("corpus: skipping %s: %v", name, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
