// Package ioimport implements the Importer interface: it loads trait
// data feeds declared in feeds.yaml into the SQLite store. This is an
// impure I/O package that reads CSV exports and performs transactional
// bulk inserts.
package ioimport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/razinkele/traitstore/pkg/config"
	"github.com/razinkele/traitstore/pkg/db"
	"github.com/razinkele/traitstore/pkg/feeds"
	"github.com/razinkele/traitstore/pkg/traitstore"
	"golang.org/x/sync/errgroup"
)

// importer implements the traitstore.Importer interface.
type importer struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Importer.
func New(cfg *config.Config, op db.Operator) traitstore.Importer {
	return &importer{cfg: cfg, operator: op}
}

// Import processes the configured feeds one at a time. A feed failure
// is logged and the next feed runs; only all feeds failing is an
// error for the whole import.
func (imp *importer) Import(
	ctx context.Context,
) ([]traitstore.ImportSummary, error) {
	if imp.operator.DB() == nil {
		return nil, NotConnectedError()
	}

	startTime := time.Now()
	slog.Info("Starting trait data import")

	feedsConfig, err := NewFeeds(imp.cfg).Load()
	if err != nil {
		return nil, err
	}
	selected, err := feedsConfig.Select(imp.cfg.Import.Sources)
	if err != nil {
		return nil, FeedsConfigError(imp.cfg.Import.FeedsFile, err)
	}
	slog.Info("Processing feeds", "count", len(selected))

	// CSV parsing is CPU-bound and independent per feed, so the feeds
	// are read up front in parallel. The database writes stay
	// sequential: SQLite has a single writer and each feed is one
	// transaction.
	tables := make([]*feedTable, len(selected))
	readErrs := make([]error, len(selected))
	g := new(errgroup.Group)
	g.SetLimit(imp.cfg.JobsNumber)
	for i, feed := range selected {
		g.Go(func() error {
			tables[i], readErrs[i] = readFeedFile(feed.Path)
			return nil
		})
	}
	g.Wait()

	var summaries []traitstore.ImportSummary
	successCount := 0

	for i, feed := range selected {
		select {
		case <-ctx.Done():
			return summaries, CancelledError(ctx.Err())
		default:
		}

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Feed [%d/%d]: %s", i+1, len(selected), feed.Source)
		fmt.Println(strings.Repeat("─", 60))

		summary := imp.processFeed(ctx, feed, tables[i], readErrs[i])
		summaries = append(summaries, summary)
		if summary.Err != nil {
			slog.Error("Failed to import feed",
				"source", feed.Source,
				"error", summary.Err)
			continue
		}

		successCount++
		slog.Info("Feed imported",
			"source", feed.Source,
			"species", summary.Species,
			"trait_values", summary.TraitValues,
			"size_classes", summary.SizeClasses,
			"duration", gnfmt.TimeString(summary.Duration.Seconds()),
		)
		gn.Info("Completed in %s",
			gnfmt.TimeString(summary.Duration.Seconds()))
	}

	totalDuration := time.Since(startTime)
	gn.Info(`Import complete
Feeds succeeded: %d, failed: %d, total: %d.
Elapsed time: <em>%s</em>
`,
		successCount,
		len(selected)-successCount,
		len(selected),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if successCount == 0 && len(selected) > 0 {
		return summaries, AllFeedsFailedError(len(selected))
	}
	return summaries, nil
}

// processFeed runs one feed in one transaction. Rows previously
// contributed by the feed's source tag are removed first, so importing
// identical input twice yields identical row counts.
func (imp *importer) processFeed(
	ctx context.Context,
	feed feeds.FeedConfig,
	table *feedTable,
	readErr error,
) traitstore.ImportSummary {
	summary := traitstore.ImportSummary{
		RunID:  uuid.New().String(),
		Source: feed.Source,
	}
	start := time.Now()

	if readErr != nil {
		summary.Err = FeedReadError(feed.Path, readErr)
		return summary
	}
	gn.Message("Loaded <em>%s</em> rows from %s",
		humanize.Comma(int64(len(table.rows))), feed.Path)

	tx, err := imp.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		summary.Err = FeedReadError(feed.Path, err)
		return summary
	}
	defer tx.Rollback()

	if err := seedOntology(ctx, tx); err != nil {
		summary.Err = err
		return summary
	}
	catalog, err := loadTraitCatalog(ctx, tx)
	if err != nil {
		summary.Err = err
		return summary
	}

	if err := deleteSource(ctx, tx, feed.Source); err != nil {
		summary.Err = err
		return summary
	}

	ins := &inserter{
		tx:        tx,
		source:    feed.Source,
		catalog:   catalog,
		batchSize: valueBatch(imp.cfg.Database.BatchSize),
	}
	switch feed.Kind {
	case feeds.KindPhytoplankton:
		err = importPhytoplankton(ctx, ins, table)
	case feeds.KindEnriched:
		err = importEnriched(ctx, ins, table)
	}
	if err == nil {
		err = ins.flushValues(ctx)
	}
	if err != nil {
		summary.Err = err
		return summary
	}

	summary.Species = ins.speciesCount
	summary.TraitValues = ins.traitValueCount
	summary.SizeClasses = ins.sizeClassCount
	summary.Duration = time.Since(start)

	if err := recordRun(ctx, tx, &summary, start); err != nil {
		summary.Err = err
		return summary
	}
	if err := tx.Commit(); err != nil {
		summary.Err = FeedReadError(feed.Path, err)
		return summary
	}

	gn.Message("<em>Imported %s species, %s trait values</em>",
		humanize.Comma(int64(summary.Species)),
		humanize.Comma(int64(summary.TraitValues)))
	return summary
}

// deleteSource removes everything a source tag contributed: its trait
// values, then the species it owns together with their size classes,
// geography and taxonomy.
func deleteSource(ctx context.Context, tx *sql.Tx, source string) error {
	stmts := []string{
		`DELETE FROM trait_values WHERE data_source = ?`,
		`DELETE FROM size_classes WHERE species_id IN
			(SELECT id FROM species WHERE data_source = ?)`,
		`DELETE FROM geographic_distribution WHERE species_id IN
			(SELECT id FROM species WHERE data_source = ?)`,
		`DELETE FROM taxonomic_hierarchy WHERE species_id IN
			(SELECT id FROM species WHERE data_source = ?)`,
		`DELETE FROM species WHERE data_source = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, source); err != nil {
			return IntegrityError(source,
				fmt.Errorf("failed to clear previous import: %w", err))
		}
	}
	return nil
}

// recordRun stores the audit row for one feed import.
func recordRun(
	ctx context.Context,
	tx *sql.Tx,
	summary *traitstore.ImportSummary,
	start time.Time,
) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO import_runs
			(run_uuid, source, started_at, finished_at,
			 species_count, value_count, size_class_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, summary.RunID, summary.Source, start, time.Now(),
		summary.Species, summary.TraitValues, summary.SizeClasses)
	if err != nil {
		return IntegrityError(summary.Source,
			fmt.Errorf("failed to record import run: %w", err))
	}
	return nil
}
