package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/guxtech/ofertagen/internal/config"
	"github.com/guxtech/ofertagen/internal/corpus"
	"github.com/guxtech/ofertagen/internal/extract"
	"github.com/guxtech/ofertagen/internal/offer"
	"github.com/guxtech/ofertagen/internal/render"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	tendersDir := flag.String("tenders", cfg.TendersDir, "directory with tender documents (.docx/.pdf)")
	offersDir := flag.String("offers", cfg.OffersDir, "directory with historical offer documents")
	outDir := flag.String("out", cfg.OutputDir, "output directory for generated artifacts")
	emitHTML := flag.Bool("html", false, "also write the HTML rendition")
	emitPDF := flag.Bool("pdf", false, "also write the PDF rendition (requires Chromium)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	extract.PdftotextFallback = cfg.PDFFallbackPdftotext

	caller, err := offer.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	exec := offer.NewStageExecutor(caller)
	runner := offer.NewLLMStageRunner(exec)
	pipeline := offer.NewPipeline(runner, offer.CompanyProfile{
		Name:        cfg.CompanyName,
		Description: cfg.CompanyDescription,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.GenerateTimeout)
	defer cancel()

	var store corpus.Store
	snap, err := store.Reload(*tendersDir, *offersDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("corpus loaded: %d licitaciones, %d ofertas", len(snap.Tenders), len(snap.Offers))

	result, err := pipeline.GenerateWithProgress(ctx, snap.Tenders, func(stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := writeJSON(filepath.Join(*outDir, "oferta.json"), result); err != nil {
		log.Fatal(err)
	}
	md := render.Markdown(result.Document)
	if err := os.WriteFile(filepath.Join(*outDir, "oferta.md"), []byte(md), 0o644); err != nil {
		log.Fatal(err)
	}
	if *emitHTML {
		page, err := render.HTML(result.Document)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(*outDir, "oferta.html"), []byte(page), 0o644); err != nil {
			log.Fatal(err)
		}
	}
	if *emitPDF {
		pdf, err := render.NewChromiumPDFRenderer().Render(ctx, result.Document)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(*outDir, "oferta.pdf"), pdf, 0o644); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("offer generated: %s (mode=%s, llm_calls=%d, fallbacks=%d)",
		result.Document.ProjectInfo.Name, result.Metadata.Mode,
		result.Metadata.LLMCalls, len(result.Metadata.StageFallbacks))
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
