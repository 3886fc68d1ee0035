// Package catalogsync mirrors the external game catalog into the
// local review database: it fetches paginated records per unit of
// work, filters out already-known entries, normalizes the survivors
// and commits them in bounded batches, checkpointing progress after
// every durably applied page so interrupted runs can resume.
package catalogsync

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gamereviews-backend/lib/catalog/igdb"
	"gamereviews-backend/lib/retryutil"
	"gamereviews-backend/services/catalogsync/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalogsync")

// Source fetches one page of catalog records. an empty page means
// the window behind the filter is exhausted.
type Source interface {
	Games(ctx context.Context, filter string, offset, limit int64) ([]igdb.Game, error)
}

// FailPolicy decides what happens when a page fails past its retry
// budget.
type FailPolicy int

const (
	// AbortUnit stops the unit, preserving the last good checkpoint
	// for a future resume.
	AbortUnit FailPolicy = iota
	// SkipPage advances past the failing page so the unit keeps
	// making forward progress.
	SkipPage
)

type Options struct {
	// PageSize is clamped to the source's documented maximum.
	PageSize        int64
	WriteBatchSize  int
	ExistsChunkSize int
	WriteRetry      retryutil.Policy
	// UnitRetries bounds how often a whole unit restarts after a
	// page-level failure under AbortUnit.
	UnitRetries   int
	OnPageFailure FailPolicy
	// DryRun fetches, dedups and transforms but never writes records
	// or advances the persisted checkpoint.
	DryRun bool
	// Resume picks the unit up from its stored checkpoint instead of
	// offset zero.
	Resume bool
	// RefreshExisting re-stamps last_synced on records the dedup
	// filter classified as already present.
	RefreshExisting bool
	// DisableExistenceCheck skips the read-side dedup entirely and
	// leans on the writer's conflict handling alone.
	DisableExistenceCheck bool
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 || o.PageSize > igdb.MaxPageSize {
		o.PageSize = igdb.MaxPageSize
	}
	if o.WriteBatchSize <= 0 {
		o.WriteBatchSize = 50
	}
	if o.ExistsChunkSize <= 0 {
		o.ExistsChunkSize = 200
	}
	if o.UnitRetries <= 0 {
		o.UnitRetries = 2
	}
	if o.WriteRetry.MaxRetries == 0 {
		o.WriteRetry = retryutil.Policy{
			MaxRetries:  2,
			InitialWait: time.Millisecond * 500,
			StepWait:    time.Millisecond * 500,
		}
	}
	return o
}

// Syncer drives the sync state machine for one or more units of
// work. units run sequentially, construct multiple Syncers sharing
// one Source to run them in parallel under a common rate budget.
type Syncer struct {
	source      Source
	dedup       Deduplicator
	writer      RecordWriter
	checkpoints Checkpointer
	qry         *db.Queries
	opts        Options
	now         func() time.Time
}

func NewSyncer(source Source, database *sql.DB, opts Options) *Syncer {
	opts = opts.withDefaults()
	qry := db.New(database)

	var dedup Deduplicator = NewStoreDeduplicator(qry, opts.ExistsChunkSize)
	if opts.DisableExistenceCheck {
		dedup = NopDeduplicator{}
	}

	return &Syncer{
		source:      source,
		dedup:       dedup,
		writer:      NewBatchWriter(database, opts.WriteBatchSize, opts.WriteRetry),
		checkpoints: NewStoreCheckpoints(qry),
		qry:         qry,
		opts:        opts,
		now:         time.Now,
	}
}

// Run syncs the given units in order and always produces a report,
// even when units fail or the context is cancelled mid-run.
func (s *Syncer) Run(ctx context.Context, units []Unit) RunReport {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	start := s.now()
	var report RunReport
	for _, unit := range units {
		if ctx.Err() != nil {
			break
		}
		slog.InfoContext(ctx, "syncing unit", "unit", unit.ID, "name", unit.Name, "estimate", unit.Estimate)
		report.Units = append(report.Units, s.SyncUnit(ctx, unit))
	}
	report.Elapsed = s.now().Sub(start)
	return report
}

// SyncUnit processes one unit to exhaustion or to its failure
// budget. the returned report carries the unit's cumulative stats
// either way.
func (s *Syncer) SyncUnit(ctx context.Context, unit Unit) UnitReport {
	ctx, span := tracer.Start(ctx, "SyncUnit")
	defer span.End()
	span.SetAttributes(attribute.String("unit", unit.ID))

	start := s.now()
	report := UnitReport{Unit: unit}

	cp := Checkpoint{Unit: unit.ID}
	if s.opts.Resume {
		loaded, ok, err := s.checkpoints.Load(ctx, unit.ID)
		if err != nil {
			slog.WarnContext(ctx, "failed to load checkpoint, starting over", "unit", unit.ID, "err", err)
		} else if ok {
			cp = loaded
			slog.InfoContext(ctx, "resuming unit", "unit", unit.ID, "offset", cp.Offset)
		}
	}

	retriesLeft := s.opts.UnitRetries
	for {
		err := s.syncPages(ctx, unit, &cp)
		if err == nil {
			report.State = UnitDone
			break
		}
		if retriesLeft <= 0 || ctx.Err() != nil {
			report.State = UnitFailed
			report.Err = err
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			break
		}
		retriesLeft--
		slog.WarnContext(ctx, "unit failed, retrying",
			"unit", unit.ID, "offset", cp.Offset, "retries_left", retriesLeft, "err", err)
	}

	report.Stats = cp.Stats
	report.Elapsed = s.now().Sub(start)

	if report.State == UnitDone && !s.opts.DryRun {
		err := s.checkpoints.Clear(ctx, unit.ID)
		if err != nil {
			slog.WarnContext(ctx, "failed to clear checkpoint", "unit", unit.ID, "err", err)
		}
	}
	return report
}

// syncPages loops FETCHING -> EXISTENCE_CHECK -> TRANSFORM -> WRITE
// -> CHECKPOINT until the source returns an empty page. pages are
// applied strictly in increasing offset order and the checkpoint
// only ever advances over fully committed pages.
func (s *Syncer) syncPages(ctx context.Context, unit Unit, cp *Checkpoint) error {
	start := s.now()
	var processed int64

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := s.source.Games(ctx, unit.Filter, cp.Offset, s.opts.PageSize)
		if err != nil {
			if s.opts.OnPageFailure != SkipPage {
				return fmt.Errorf("fetch page at offset %d: %w", cp.Offset, err)
			}
			slog.WarnContext(ctx, "skipping page", "unit", unit.ID, "offset", cp.Offset, "err", err)
			cp.Offset += s.opts.PageSize
			cp.Stats.PagesSkipped++
			cp.UpdatedAt = s.now()
			if !s.opts.DryRun {
				if err := s.checkpoints.Save(ctx, *cp); err != nil {
					return fmt.Errorf("save checkpoint: %w", err)
				}
			}
			continue
		}
		if len(page) == 0 {
			// unit exhausted
			return nil
		}

		pageStats, err := s.processPage(ctx, page)
		if err != nil {
			return fmt.Errorf("process page at offset %d: %w", cp.Offset, err)
		}

		cp.Offset += int64(len(page))
		cp.Stats.Add(pageStats)
		cp.UpdatedAt = s.now()
		if !s.opts.DryRun {
			if err := s.checkpoints.Save(ctx, *cp); err != nil {
				return fmt.Errorf("save checkpoint: %w", err)
			}
		}

		processed += int64(len(page))
		elapsed := s.now().Sub(start).Seconds()
		var perSec float64
		if elapsed > 0 {
			perSec = math.Round(float64(processed) / elapsed)
		}
		slog.InfoContext(ctx, "progress",
			"unit", unit.ID,
			"offset", cp.Offset,
			"fetched", cp.Stats.Fetched,
			"estimate", unit.Estimate,
			"rate_per_sec", perSec)
	}
}

// processPage runs one fetched page through dedup, transform and the
// writer. a page where every attempted record failed is reported as
// an error so the unit-level retry can kick in, the store is most
// likely down.
func (s *Syncer) processPage(ctx context.Context, page []igdb.Game) (Stats, error) {
	stats := Stats{Fetched: int64(len(page))}

	ids := make([]int64, len(page))
	for i, g := range page {
		ids[i] = g.ID
	}
	newIds := s.dedup.FilterNew(ctx, ids)
	isNew := make(map[int64]bool, len(newIds))
	for _, id := range newIds {
		isNew[id] = true
	}

	now := s.now()
	var existing []int64
	records := make([]db.CreateGameParams, 0, len(newIds))
	for _, g := range page {
		if !isNew[g.ID] {
			existing = append(existing, g.ID)
			stats.SkippedDuplicate++
			continue
		}
		record, err := TransformGame(g, now)
		if err != nil {
			slog.WarnContext(ctx, "dropping record", "igdb_id", g.ID, "err", err)
			stats.Failed++
			continue
		}
		records = append(records, record)
	}
	stats.New = int64(len(records))

	if s.opts.DryRun {
		return stats, nil
	}

	res := s.writer.Write(ctx, records)
	stats.Written += res.Written
	stats.SkippedDuplicate += res.SkippedDuplicate
	stats.Failed += res.Failed
	if len(records) > 0 && res.Failed == int64(len(records)) {
		return stats, fmt.Errorf("every sub-batch failed")
	}

	if s.opts.RefreshExisting && len(existing) > 0 {
		err := s.qry.TouchGameSynced(ctx, db.TouchGameSyncedParams{
			LastSynced: now.Unix(),
			IgdbIds:    existing,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to refresh existing records", "err", err)
		}
	}

	return stats, nil
}
