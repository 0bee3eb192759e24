// Package pipeline orchestrates one batch run: identity short-circuit,
// classification, routing, transactional persistence and post-commit
// enrichment, with per-file failure isolation.
package pipeline

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/username/finsift/src/classifier"
	"github.com/username/finsift/src/enrich"
	"github.com/username/finsift/src/ingest"
	"github.com/username/finsift/src/logger"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

// Pipeline processes a batch of documents against one store.
type Pipeline struct {
	store    *store.Store
	router   *Router
	detector enrich.Detector

	// ForceReimport bypasses the file-identity short-circuit; record-level
	// dedup still applies downstream.
	ForceReimport bool

	// Optional ISO date window applied to extracted transactions only.
	DateFrom string
	DateTo   string
}

func New(s *store.Store, detector enrich.Detector) *Pipeline {
	return &Pipeline{
		store:    s,
		router:   NewRouter(),
		detector: detector,
	}
}

// Summary tallies one batch run. Failed files are reported, never fatal.
type Summary struct {
	RunID             string
	FilesProcessed    int
	FilesSkipped      int
	FilesFailed       int
	RecordsInserted   int
	DuplicatesSkipped int
	RecurringFlagged  int
	Failures          []FileFailure
}

type FileFailure struct {
	Path string
	Err  error
}

// Run processes every path in order. A file's failure is isolated: it is
// recorded in the summary and the batch moves on.
func (p *Pipeline) Run(paths []string) *Summary {
	summary := &Summary{RunID: uuid.NewString()}
	log := logger.L.With("runID", summary.RunID)
	log.Info("starting batch", "files", len(paths), "forceReimport", p.ForceReimport)

	for _, path := range paths {
		if err := p.processFile(path, summary, log); err != nil {
			summary.FilesFailed++
			summary.Failures = append(summary.Failures, FileFailure{Path: path, Err: err})
			log.Error("file failed", "file", path, "error", err)
		}
	}

	log.Info("batch finished",
		"processed", summary.FilesProcessed,
		"skipped", summary.FilesSkipped,
		"failed", summary.FilesFailed,
		"inserted", summary.RecordsInserted,
		"duplicates", summary.DuplicatesSkipped,
		"recurringFlagged", summary.RecurringFlagged)
	return summary
}

func (p *Pipeline) processFile(path string, summary *Summary, log *slog.Logger) error {
	doc, err := ingest.ReadDocument(path)
	if err != nil {
		return err
	}

	if !p.ForceReimport {
		imported, err := p.store.IsFileImported(doc.Identity)
		if err != nil {
			return err
		}
		if imported {
			summary.FilesSkipped++
			log.Debug("file already imported", "file", doc.Name, "identity", doc.Identity)
			return nil
		}
	}

	cls := classifier.Classify(doc.Name, doc.Text)
	routed := p.router.Route(doc, cls)
	p.applyDateWindow(routed)

	if routed.Kind == models.KindUnknown {
		log.Warn("document not recognized, importing as unknown", "file", doc.Name)
	}

	result, err := p.store.PersistDocument(routed)
	if err != nil {
		// Rolled back; the file stays unmarked and is retried next run.
		return err
	}
	summary.RecordsInserted += result.Inserted
	summary.DuplicatesSkipped += result.Skipped

	// The import mark lands after the primary commit. A crash in between
	// re-runs the file next time and record-level dedup absorbs it.
	if err := p.store.RecordImport(models.ImportedFile{
		FileIdentity: doc.Identity,
		SourcePath:   doc.Path,
		DocumentKind: routed.Kind,
		RecordCount:  routed.RecordCount(),
	}); err != nil {
		return err
	}
	summary.FilesProcessed++

	log.Info("file imported",
		"file", doc.Name,
		"kind", string(routed.Kind),
		"bank", cls.BankName,
		"accountType", cls.AccountType,
		"inserted", result.Inserted,
		"duplicates", result.Skipped)

	// Enrichment failure is logged only; the primary records are already
	// committed and stay put.
	if p.detector != nil && routed.Kind == models.KindStatement && result.Inserted > 0 {
		flagged, err := p.detector.Apply(p.store)
		if err != nil {
			log.Warn("enrichment failed, primary records unaffected",
				"file", doc.Name, "error", err)
		} else {
			summary.RecurringFlagged += flagged
		}
	}
	return nil
}

// applyDateWindow drops extracted transactions outside the configured
// window. Balances, paystubs and tax forms carry their own document dates
// and are not windowed.
func (p *Pipeline) applyDateWindow(routed *models.RoutedDocument) {
	if p.DateFrom == "" && p.DateTo == "" {
		return
	}
	kept := routed.Transactions[:0]
	for _, t := range routed.Transactions {
		if p.DateFrom != "" && t.Date < p.DateFrom {
			continue
		}
		if p.DateTo != "" && t.Date > p.DateTo {
			continue
		}
		kept = append(kept, t)
	}
	routed.Transactions = kept
	if routed.Kind == models.KindStatement && routed.Balance == nil && len(routed.Transactions) == 0 {
		routed.Kind = models.KindUnknown
	}
}
