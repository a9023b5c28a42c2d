package amorph

import (
	"math/rand"
	"time"
)

// Default tuning parameters, matching the reference generation recipe.
const (
	DefaultMinFactor   = 1.1
	DefaultMaxAttempts = 1000
	DefaultTemperature = 0.1
)

// Options are the tuning parameters of one build. Zero values are
// replaced by the defaults; Seed 0 means seed from the wall clock.
type Options struct {
	MinFactor   float64
	MaxAttempts int
	Temperature float64
	Seed        int64
}

func (o Options) withDefaults() Options {
	if o.MinFactor == 0 {
		o.MinFactor = DefaultMinFactor
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// ProgressFunc observes the build, invoked once per particle right after
// it is appended. placed counts the particle just appended.
type ProgressFunc func(placed, total int, sp Species, fallback bool)

// Builder incrementally constructs an amorphous structure: it plans the
// per-species atom counts from the target density, then places atoms one
// at a time, each new position validated against everything placed so
// far. The particle list is append-only; a placed atom is never moved.
type Builder struct {
	table    *PropertyTable
	opts     Options
	logger   Logger
	progress ProgressFunc
	notifier *NotificationManager
	name     string
}

// NewBuilder creates a builder using the given property table and options.
func NewBuilder(table *PropertyTable, opts Options) *Builder {
	return &Builder{
		table:  table,
		opts:   opts.withDefaults(),
		logger: NewNoOpLogger(),
	}
}

// SetLogger sets the logger used during builds.
func (b *Builder) SetLogger(logger Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// SetProgress sets the per-particle progress observer.
func (b *Builder) SetProgress(fn ProgressFunc) {
	b.progress = fn
}

// SetNotificationManager routes per-particle and completion events to
// the given manager. name identifies this build in the events.
func (b *Builder) SetNotificationManager(mgr *NotificationManager, name string) {
	b.notifier = mgr
	b.name = name
}

// Build runs one full construction. All fatal errors (unknown species,
// unusable planned counts) occur before any particle is placed. A
// particle that could not satisfy the separation constraint within the
// attempt budget is still placed, at an unconstrained position, and
// counted in BuildResult.Fallbacks; callers must not silently discard
// that count.
func (b *Builder) Build(stoich Stoichiometry, box Box, targetDensity float64) (*BuildResult, error) {
	species := make([]Species, len(stoich))
	for i, c := range stoich {
		sp, err := b.table.Lookup(c.Symbol)
		if err != nil {
			return nil, err
		}
		species[i] = sp
	}

	counts, err := PlanCounts(species, stoich, box, targetDensity)
	if err != nil {
		return nil, err
	}

	total := 0
	planned := make([]SpeciesCount, len(stoich))
	for i, c := range stoich {
		planned[i] = SpeciesCount{Symbol: c.Symbol, Count: counts[i]}
		total += counts[i]
	}
	b.logger.Infof("planning %d atoms in %.1fx%.1fx%.1f A cell for %.3f g/cm^3",
		total, box[0], box[1], box[2], targetDensity)

	rng := rand.New(rand.NewSource(b.opts.Seed))
	checker := NewConstraintChecker(b.opts.MinFactor)
	selector := NewSelector(checker, rng, b.opts.MaxAttempts, b.opts.Temperature)

	result := &BuildResult{
		Particles:     make([]Particle, 0, total),
		Box:           box,
		PlannedCounts: planned,
	}

	for i, sp := range species {
		for n := 0; n < counts[i]; n++ {
			pos, fallback := selector.Select(sp, result.Particles, box)
			result.Particles = append(result.Particles, Particle{Species: sp, Position: pos})
			if fallback {
				result.Fallbacks++
				b.logger.Warnf("no valid position for %s atom %d/%d within %d attempts, placed unconstrained",
					sp.Symbol, len(result.Particles), total, b.opts.MaxAttempts)
			}
			if b.progress != nil {
				b.progress(len(result.Particles), total, sp, fallback)
			}
			b.notify(ProgressEvent{
				Build:     b.name,
				Symbol:    sp.Symbol,
				Position:  pos,
				Placed:    len(result.Particles),
				Total:     total,
				Fallback:  fallback,
				Timestamp: time.Now().Unix(),
			})
		}
	}

	result.Density = result.TotalMass() / box.Volume()
	result.DensityGCm3 = result.Density * gramsPerAMU / cm3PerCubicAngs
	b.logger.Infof("placed %d atoms (%d fallbacks), realized density %.4f amu/A^3",
		len(result.Particles), result.Fallbacks, result.Density)
	return result, nil
}

func (b *Builder) notify(event ProgressEvent) {
	if b.notifier == nil {
		return
	}
	b.notifier.Publish(event)
}
