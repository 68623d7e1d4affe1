package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/guxtech/ofertagen/internal/config"
	"github.com/guxtech/ofertagen/internal/corpus"
	"github.com/guxtech/ofertagen/internal/extract"
)

// corpus-load extracts and segments every historical document once,
// reports what was found, and writes the segmented snapshot to disk
// for inspection.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	tendersDir := flag.String("tenders", cfg.TendersDir, "directory with tender documents (.docx/.pdf)")
	offersDir := flag.String("offers", cfg.OffersDir, "directory with historical offer documents")
	outFile := flag.String("out", "corpus.json", "file to write the segmented snapshot to")
	flag.Parse()

	extract.PdftotextFallback = cfg.PDFFallbackPdftotext

	var store corpus.Store
	snap, err := store.Reload(*tendersDir, *offersDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range snap.Tenders {
		log.Printf("licitacion %s: %d secciones", e.Origin, e.Doc.Len())
	}
	for _, e := range snap.Offers {
		log.Printf("oferta %s: %d secciones", e.Origin, e.Doc.Len())
	}
	log.Printf("total: %d licitaciones, %d ofertas", len(snap.Tenders), len(snap.Offers))

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*outFile, append(b, '\n'), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("snapshot written to %s", *outFile)
}
