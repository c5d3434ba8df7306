// Package app wires the pipeline stages together: normalize, segment,
// build, encode. One Convert call runs one complete conversion.
package app

import (
	"context"
	"time"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/domain/model"
	"github.com/veyra/wcl2mdt/internal/domain/normalize"
	"github.com/veyra/wcl2mdt/internal/domain/plan"
	"github.com/veyra/wcl2mdt/internal/domain/segment"
	"github.com/veyra/wcl2mdt/internal/encoding/mdt"
	"github.com/veyra/wcl2mdt/pkg/logger"
	"github.com/veyra/wcl2mdt/pkg/metrics"
)

// Service runs the conversion pipeline. It holds configuration only; every
// Convert call is independent and run-to-completion, so a single Service is
// safe to reuse across runs.
type Service struct {
	gap  time.Duration
	week int
	name string
	log  logger.Logger
}

// Result is everything one conversion produced.
type Result struct {
	Export    string
	Plan      model.PullPlan
	Warnings  []normalize.Warning
	Instances int
}

// New constructs a Service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		gap: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("pipeline")
	}
	return s
}

// GapThreshold returns the configured pull gap threshold.
func (s *Service) GapThreshold() time.Duration {
	return s.gap
}

// Convert runs the core pipeline over one run's raw events. Unknown enemies
// are skipped and surfaced as warnings; an empty run yields a valid export
// of an empty plan. The only error path is export encoding, which is fatal
// and returns no partial string.
func (s *Service) Convert(ctx context.Context, cat *catalog.Catalog, events []model.RawEvent) (Result, error) {
	normalizer := normalize.New(cat)
	instances, warnings := normalizer.Normalize(ctx, events)
	metrics.RecordNormalized(len(instances), len(warnings))
	for _, w := range warnings {
		s.log.Warn(ctx, "skipping unresolved enemy instance",
			logger.String("instance", w.InstanceID),
			logger.Int("enemyType", w.EnemyType),
			logger.Error(w.Err),
		)
	}
	if len(instances) == 0 {
		metrics.RecordEmptyRun()
		s.log.Warn(ctx, "run normalized to zero enemy instances; exporting an empty plan")
	}

	segmenter := segment.New(segment.WithGapThreshold(s.gap))
	pulls := segmenter.Segment(ctx, instances)
	metrics.RecordPulls(len(pulls))
	s.log.Info(ctx, "pulls identified",
		logger.Int("instances", len(instances)),
		logger.Int("pulls", len(pulls)),
		logger.Int64("gapMS", s.gap.Milliseconds()),
	)

	builder := plan.New(
		plan.WithDungeon(cat.DungeonID()),
		plan.WithWeek(s.week),
		plan.WithName(s.name),
	)
	p := builder.Build(ctx, pulls)

	start := time.Now()
	export, err := mdt.Encode(p)
	if err != nil {
		return Result{}, err
	}
	metrics.RecordExport(len(export), time.Since(start))
	s.log.Info(ctx, "export string generated",
		logger.Int("bytes", len(export)),
		logger.Int("pulls", len(p.Pulls)),
		logger.Int("enemies", p.Enemies()),
	)

	return Result{
		Export:    export,
		Plan:      p,
		Warnings:  warnings,
		Instances: len(instances),
	}, nil
}
