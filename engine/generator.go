package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dosecron/dosecron/holiday"
	"github.com/dosecron/dosecron/internal/datemath"
)

// DefaultMaxRelocationAttempts bounds how many consecutive days a single
// slot may be moved forward before the generator fails open.
const DefaultMaxRelocationAttempts = 30

// phase names the generator's progress through one run, for logging.
type phase string

const (
	phaseValidating      phase = "validating"
	phaseResolvingPeriod phase = "resolving_period"
	phaseLoadingHolidays phase = "loading_holidays"
	phaseCounting        phase = "counting"
	phaseGenerating      phase = "generating"
	phaseDone            phase = "done"
)

// Generator produces recurring date sequences. It holds its collaborators
// explicitly (no process-wide singletons) and is safe to reuse across runs;
// concurrent runs share the cache, whose writes are idempotent per
// (country, year) key.
type Generator struct {
	cache  *holiday.Cache
	source holiday.Source
	logger *slog.Logger

	maxRelocationAttempts int
}

// NewGenerator creates a generator. The cache and source are only needed
// when configs request holiday exclusion; either may be nil, in which case
// holiday data degrades to empty. A nil logger falls back to slog.Default.
func NewGenerator(cache *holiday.Cache, source holiday.Source, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cache:                 cache,
		source:                source,
		logger:                logger,
		maxRelocationAttempts: DefaultMaxRelocationAttempts,
	}
}

// Generate runs one calculation and returns the ordered date sequence.
//
// Validation and configuration errors are fatal and nothing is computed.
// Holiday loading is best-effort: failures degrade to dates without holiday
// filtering rather than failing the run. A non-positive count yields an
// empty sequence, not an error.
func (g *Generator) Generate(ctx context.Context, cfg RecurrenceConfig) ([]DateEntry, error) {
	log := g.logger.With("run_id", uuid.NewString())

	log.Debug("generation phase", "phase", phaseValidating)
	start, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if cfg.ExcludeHolidays && cfg.CountryCode == "" {
		log.Warn("holiday exclusion requested without a country code, ignoring")
	}

	log.Debug("generation phase", "phase", phaseResolvingPeriod)
	end, err := ResolveEndDate(start, cfg.Duration, cfg.DurationUnit)
	if err != nil {
		return nil, err
	}

	log.Debug("generation phase", "phase", phaseLoadingHolidays)
	index := g.loadHolidayIndex(ctx, log, cfg, start, end)

	log.Debug("generation phase", "phase", phaseCounting)
	intervalDays := cfg.IntervalDays()
	count := CountDates(start, end, intervalDays)
	if count <= 0 {
		log.Debug("generation phase", "phase", phaseDone, "dates", 0)
		return []DateEntry{}, nil
	}

	log.Debug("generation phase", "phase", phaseGenerating, "slots", count)
	exclusionsActive := cfg.ExcludeWeekends || (cfg.ExcludeHolidays && len(index) > 0)

	entries := make([]DateEntry, 0, count)
	for i := 0; i < count; i++ {
		theoretical := datemath.AddDays(start, i*intervalDays)

		final := theoretical
		exhausted := false
		if exclusionsActive {
			final, exhausted = g.relocate(theoretical, index, cfg)
			if exhausted {
				log.Warn("no valid day found within relocation bound, emitting as-is",
					"slot", i+1, "date", final.Format(holiday.DateLayout))
			}
		}

		eval := Evaluate(final, index, cfg)
		entries = append(entries, DateEntry{
			Date:                final,
			DateString:          final.Format(holiday.DateLayout),
			IntervalNumber:      i + 1,
			IsWeekend:           eval.IsWeekend,
			IsHoliday:           eval.IsHoliday,
			Holiday:             eval.Holiday,
			OriginalDate:        theoretical,
			WasRelocated:        !final.Equal(theoretical),
			RelocationExhausted: exhausted,
		})
	}

	log.Debug("generation phase", "phase", phaseDone, "dates", len(entries))
	return entries, nil
}

// relocate advances date one day at a time until it is no longer excluded,
// up to the attempt bound. On exhaustion it fails open: the last-tried date
// is returned with exhausted set, so a pathological holiday calendar can
// degrade a single slot but never block generation.
func (g *Generator) relocate(date time.Time, index holiday.Index, cfg RecurrenceConfig) (time.Time, bool) {
	current := date
	for attempts := 1; ; attempts++ {
		if !Evaluate(current, index, cfg).ShouldExclude {
			return current, false
		}
		if attempts >= g.maxRelocationAttempts {
			return current, true
		}
		current = datemath.AddDays(current, 1)
	}
}

// loadHolidayIndex preloads every holiday year spanning [start.year,
// end.year] and builds the exact-date index used during generation. Years
// that fail to load are skipped with a warning; holiday awareness is an
// enhancement, never a hard dependency.
func (g *Generator) loadHolidayIndex(ctx context.Context, log *slog.Logger, cfg RecurrenceConfig, start, end time.Time) holiday.Index {
	if !cfg.ExcludeHolidays || cfg.CountryCode == "" {
		return holiday.Index{}
	}
	if g.cache == nil || g.source == nil {
		log.Warn("holiday exclusion requested but no holiday source configured, proceeding without holiday data")
		return holiday.Index{}
	}

	var lists [][]holiday.Record
	failed := 0
	for year := start.Year(); year <= end.Year(); year++ {
		records, err := g.cache.FetchAndCache(ctx, cfg.CountryCode, year, g.source)
		if err != nil {
			failed++
			log.Warn("failed to load holidays, proceeding without them for this year",
				"country", cfg.CountryCode, "year", year, "error", err)
			continue
		}
		lists = append(lists, records)
	}

	if len(lists) == 0 && failed > 0 {
		log.Warn("no holiday data could be loaded, dates will not be holiday-filtered",
			"country", cfg.CountryCode)
	}
	return holiday.BuildIndex(lists...)
}
