package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cellar/internal/listing"
	"cellar/internal/logging"
	"cellar/internal/rating"
	"cellar/internal/services"
)

// defaultWorkers bounds concurrent in-flight rating calls.
const defaultWorkers = 4

// Rater scores one wine record.
type Rater interface {
	Rate(ctx context.Context, rec *listing.Record) (rating.Outcome, error)
}

// Config carries the run parameters.
type Config struct {
	// ListingPaths are the listing files to process.
	ListingPaths []string
	// Workers bounds concurrent rating calls; <= 0 means the default of 4.
	Workers int
	// LockPath, when set, is the flock file guarding against concurrent
	// runs from other processes.
	LockPath string
}

// Result is one completed rating, for reporting.
type Result struct {
	File     string
	Producer string
	WineName string
	Vintage  string
	Score    int
	Reason   string
	Degraded bool
}

// Summary describes a finished run.
type Summary struct {
	Total    int
	Rated    int
	Degraded int
	// Files lists the listing files that received updates.
	Files   []string
	Results []Result
}

// Pipeline runs the concurrent rating pass.
type Pipeline struct {
	rater  Rater
	cfg    Config
	logger *slog.Logger
}

// New constructs a pipeline.
func New(rater Rater, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Pipeline{
		rater:  rater,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// fileGroup is one listing with work to do. All tasks for the group share
// the records slice; the write mutex is what makes that sharing safe.
type fileGroup struct {
	path    string
	records []*listing.Record
}

type task struct {
	group  *fileGroup
	record *listing.Record
}

// Run rates every unrated wine across the configured listings. Per-record
// failures degrade that record and never abort the run; a listing write
// failure terminates it.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))
	ctx = services.WithRunID(ctx, runID)

	if p.cfg.LockPath != "" {
		lock := flock.New(p.cfg.LockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return Summary{}, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return Summary{}, errors.New("another cellar run is already in progress")
		}
		defer lock.Unlock() //nolint:errcheck
	}

	groups, tasks, err := p.discover(logger)
	if err != nil {
		return Summary{}, err
	}
	if len(tasks) == 0 {
		logger.Info("all wines already rated")
		return Summary{}, nil
	}
	logger.Info("starting rating run",
		logging.Int("unrated", len(tasks)),
		logging.Int("files", len(groups)),
		logging.Int("workers", p.cfg.Workers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu        sync.Mutex
		completed int
		summary   Summary
		writeErr  error
	)
	summary.Total = len(tasks)

	taskCh := make(chan task)
	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				p.process(runCtx, logger, t, &mu, &completed, len(tasks), &summary, &writeErr, cancel)
			}
		}()
	}

	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)
	wg.Wait()

	if writeErr != nil {
		return summary, writeErr
	}

	for _, g := range groups {
		summary.Files = append(summary.Files, g.path)
	}
	logger.Info("rating run complete",
		logging.Int("rated", summary.Rated),
		logging.Int("degraded", summary.Degraded))
	return summary, nil
}

// discover parses every configured listing and collects the unrated
// records. Files with nothing to do are skipped entirely.
func (p *Pipeline) discover(logger *slog.Logger) ([]*fileGroup, []task, error) {
	var groups []*fileGroup
	var tasks []task
	for _, path := range p.cfg.ListingPaths {
		records, err := listing.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		if len(records) == 0 {
			logger.Info("no wines found", logging.String(logging.FieldFile, path))
			continue
		}
		var unrated []*listing.Record
		for _, rec := range records {
			if !rec.Rated() {
				unrated = append(unrated, rec)
			}
		}
		logger.Info("parsed listing",
			logging.String(logging.FieldFile, path),
			logging.Int("wines", len(records)),
			logging.Int("rated", len(records)-len(unrated)),
			logging.Int("unrated", len(unrated)))
		if len(unrated) == 0 {
			continue
		}
		group := &fileGroup{path: path, records: records}
		groups = append(groups, group)
		for _, rec := range unrated {
			tasks = append(tasks, task{group: group, record: rec})
		}
	}
	return groups, tasks, nil
}

// process rates one record and persists its file under the shared lock.
func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, t task,
	mu *sync.Mutex, completed *int, total int, summary *Summary, writeErr *error, cancel context.CancelFunc) {

	rec := t.record

	if ctx.Err() != nil {
		// The run is being torn down after a write failure; leave the
		// record unrated rather than racing the shutdown.
		return
	}

	out, err := p.rater.Rate(ctx, rec)
	if err != nil {
		// One wine's failure must never block the others.
		logger.Warn("rating failed, recording degraded score",
			logging.String(logging.FieldProducer, rec.Producer),
			logging.String(logging.FieldWine, rec.WineName),
			logging.Error(err))
		out = rating.Outcome{Score: rating.DegradedScore, Degraded: true}
	}

	// The lock covers the record mutation as well as the file rewrite:
	// other workers read every record of the group while serializing it.
	mu.Lock()
	defer mu.Unlock()
	if *writeErr != nil {
		return
	}
	rec.SetScore(out.Score, out.Reason)
	*completed++
	logger.Info("rated wine",
		logging.String("progress", fmt.Sprintf("%d/%d", *completed, total)),
		logging.String(logging.FieldProducer, rec.Producer),
		logging.String(logging.FieldWine, rec.WineName),
		logging.String(logging.FieldScore, listing.Stars(*rec.Score)))

	summary.Rated++
	if out.Degraded {
		summary.Degraded++
	}
	summary.Results = append(summary.Results, Result{
		File:     t.group.path,
		Producer: rec.Producer,
		WineName: rec.WineName,
		Vintage:  rec.Vintage,
		Score:    *rec.Score,
		Reason:   rec.Reason,
		Degraded: out.Degraded,
	})

	// The whole file is the unit of mutation: serializing every record of
	// the group keeps sibling updates already made by other workers.
	if err := listing.WriteFile(t.group.path, t.group.records); err != nil {
		*writeErr = err
		cancel()
	}
}
