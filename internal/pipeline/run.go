// Package pipeline orchestrates the per-entry content generation workflow:
// discovery, parameter extraction, content generation, image synthesis,
// image storage and finalization against the entry store.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/content-pipeline/internal/content"
	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/extract"
	"github.com/jonathan/content-pipeline/internal/imagegen"
)

// EntryStore is the slice of the store the orchestrator needs. *db.DB
// satisfies it; tests substitute an in-memory fake.
type EntryStore interface {
	FetchPending(ctx context.Context) ([]db.CalendarEntry, error)
	MarkGenerated(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (db.Profile, error)
}

// ImageSaver persists image bytes and returns a reference to the stored copy.
type ImageSaver interface {
	Save(img *content.Image, entryID uuid.UUID, topic string) (string, error)
}

// Options wires the orchestrator's collaborators and bounds.
type Options struct {
	Store       EntryStore
	Generator   content.Generator
	Synthesizer imagegen.Synthesizer
	Images      ImageSaver

	// Workers bounds parallel entry processing to respect upstream rate
	// limits. Zero selects the default; one means sequential.
	Workers int

	// Per-call timeouts. Every external call runs under one so a stalled
	// upstream cannot hold the batch.
	GenTimeout   time.Duration
	ImageTimeout time.Duration
	StoreTimeout time.Duration

	Log logrus.FieldLogger
}

// Defaults applied when Options leaves a field zero.
const (
	defaultWorkers      = 3
	defaultGenTimeout   = 2 * time.Minute
	defaultImageTimeout = 2 * time.Minute
	defaultStoreTimeout = 10 * time.Second
)

type outcome struct {
	failure *EntryFailure
}

type runner struct {
	opts Options

	mu       sync.Mutex
	profiles map[uuid.UUID]db.Profile
}

// Run executes one batch: a single discovery snapshot, then every entry
// through the full pipeline. Entry failures are isolated and collected; only
// a discovery failure is returned as an error.
func Run(ctx context.Context, opts Options) (*BatchResult, error) {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.GenTimeout <= 0 {
		opts.GenTimeout = defaultGenTimeout
	}
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = defaultImageTimeout
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultStoreTimeout
	}
	if opts.Log == nil {
		log := logrus.New()
		log.SetLevel(logrus.PanicLevel)
		opts.Log = log
	}

	entries, err := opts.Store.FetchPending(ctx)
	if err != nil {
		return nil, err
	}

	opts.Log.WithField("count", len(entries)).Info("discovered pending entries")

	r := &runner{opts: opts, profiles: make(map[uuid.UUID]db.Profile)}
	outcomes := make([]outcome, len(entries))

	g := &errgroup.Group{}
	g.SetLimit(opts.Workers)
	for i := range entries {
		i, entry := i, entries[i]
		g.Go(func() error {
			outcomes[i] = r.processEntry(ctx, entry)
			return nil
		})
	}
	// Workers never return errors; failures are per-entry outcomes.
	_ = g.Wait()

	result := &BatchResult{Discovered: len(entries)}
	for _, out := range outcomes {
		if out.failure != nil {
			result.Failed++
			result.Failures = append(result.Failures, *out.failure)
		} else {
			result.Succeeded++
		}
	}

	opts.Log.WithFields(logrus.Fields{
		"discovered": result.Discovered,
		"succeeded":  result.Succeeded,
		"failed":     result.Failed,
	}).Info("batch completed")

	return result, nil
}

// processEntry drives one entry through validating -> generating ->
// synthesizing -> storing -> finalizing. Any stage error routes to the
// failure finalizer and the entry stays pending in the store.
func (r *runner) processEntry(ctx context.Context, entry db.CalendarEntry) outcome {
	log := r.opts.Log.WithField("entry_id", entry.ID)

	log.WithField("stage", StageValidating).Debug("processing entry")
	req, err := extract.Extract(entry)
	if err != nil {
		return r.fail(ctx, log, entry.ID, StageValidating, err)
	}

	profile := r.profileFor(ctx, log, req.UserID)

	log.WithField("stage", StageGenerating).Debug("generating content")
	genCtx, cancel := context.WithTimeout(ctx, r.opts.GenTimeout)
	gen, err := r.opts.Generator.Generate(genCtx, req, profile)
	cancel()
	if err != nil {
		return r.fail(ctx, log, entry.ID, StageGenerating, err)
	}

	log.WithField("stage", StageSynthesizing).Debug("synthesizing image")
	imgCtx, cancel := context.WithTimeout(ctx, r.opts.ImageTimeout)
	img, err := r.opts.Synthesizer.Synthesize(imgCtx, gen, req, profile)
	cancel()
	if err != nil {
		return r.fail(ctx, log, entry.ID, StageSynthesizing, err)
	}

	log.WithField("stage", StageStoring).Debug("saving image")
	imageRef, err := r.opts.Images.Save(img, entry.ID, req.Topic)
	if err != nil {
		return r.fail(ctx, log, entry.ID, StageStoring, err)
	}

	// The store write is the single source of truth; it happens only after
	// every generation step succeeded.
	storeCtx, cancel := context.WithTimeout(ctx, r.opts.StoreTimeout)
	err = r.opts.Store.MarkGenerated(storeCtx, entry.ID)
	cancel()
	if err != nil {
		return r.fail(ctx, log, entry.ID, StageFinalizing, err)
	}

	log.WithFields(logrus.Fields{
		"summary":   gen.Summary(),
		"image_ref": imageRef,
	}).Info("entry completed")
	return outcome{}
}

// fail records the failure in the store, best-effort. A failure to record
// the failure is logged and otherwise ignored so the batch continues.
func (r *runner) fail(ctx context.Context, log logrus.FieldLogger, id uuid.UUID, stage Stage, err error) outcome {
	log.WithField("stage", stage).WithError(err).Error("entry failed")

	storeCtx, cancel := context.WithTimeout(ctx, r.opts.StoreTimeout)
	defer cancel()
	if markErr := r.opts.Store.MarkFailed(storeCtx, id); markErr != nil {
		log.WithError(markErr).Warn("could not record entry failure in store")
	}

	return outcome{failure: &EntryFailure{EntryID: id, Stage: stage, Err: err}}
}

// profileFor loads the user's brand context, caching it for the run. Lookup
// errors fall back to the defaults so generation can still proceed.
func (r *runner) profileFor(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID) db.Profile {
	r.mu.Lock()
	if p, ok := r.profiles[userID]; ok {
		r.mu.Unlock()
		return p
	}
	r.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, r.opts.StoreTimeout)
	defer cancel()
	profile, err := r.opts.Store.GetProfile(storeCtx, userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Warn("falling back to default profile")
		profile = db.DefaultProfile()
	}

	r.mu.Lock()
	r.profiles[userID] = profile
	r.mu.Unlock()
	return profile
}
