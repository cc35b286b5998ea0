package quickcheck

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config tunes a driver run. The zero value gets sensible defaults.
type Config struct {
	// Trials is how many passing trials constitute success. Default 100.
	Trials int

	// Seed fixes the random stream; 0 means pick a fresh seed at run start.
	// Either way the seed actually used is reported in the result.
	Seed int64

	// MaxSize is the ceiling the size ramp reaches on the last trial.
	// Default 100.
	MaxSize int

	// MaxShrinkSteps caps accepted shrink steps before the search gives up
	// and flags the result as possibly non-minimal. Default 1000.
	MaxShrinkSteps int

	// MaxDiscardRatio aborts the run when discards/(passes+1) reaches it.
	// Default 10.
	MaxDiscardRatio int
}

func (c Config) withDefaults() Config {
	if c.Trials <= 0 {
		c.Trials = 100
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
	if c.MaxShrinkSteps <= 0 {
		c.MaxShrinkSteps = 1000
	}
	if c.MaxDiscardRatio <= 0 {
		c.MaxDiscardRatio = 10
	}
	return c
}

// PropFunc is the predicate under test. It receives one Value per declared
// parameter, in order. Returning false or a non-nil error (or panicking)
// falsifies the property; returning the Discard sentinel rejects the input
// without a verdict.
type PropFunc func(args []Value) (bool, error)

const (
	driverIdle int32 = iota
	driverRunning
	driverSpent
)

// Driver runs one property against many generated inputs. A Driver is
// single shot: Run may complete at most once, and concurrent or repeated
// calls fail with ErrAlreadyRunning.
type Driver struct {
	registry *Registry
	cfg      Config
	state    int32
}

// NewDriver builds a driver over the given registry. A nil registry means
// the process-wide default.
func NewDriver(reg *Registry, cfg Config) *Driver {
	if reg == nil {
		reg = defaultRegistry
	}
	return &Driver{registry: reg, cfg: cfg}
}

// RunProperty drives prop against the default registry with cfg. This is
// the harness entry point used by adapter layers that extract parameter
// descriptors from a property by reflection or explicit declaration.
func RunProperty(ctx context.Context, params []Descriptor, prop PropFunc, cfg Config) (*RunResult, error) {
	return NewDriver(nil, cfg).Run(ctx, params, prop)
}

// sizeFor ramps linearly from 1 on the first trial to maxSize on the last.
func sizeFor(trial, trials, maxSize int) int {
	if trials <= 1 || maxSize <= 1 {
		return maxSize
	}
	if trial >= trials-1 {
		return maxSize
	}
	return 1 + trial*(maxSize-1)/(trials-1)
}

type verdict struct {
	pass    bool
	discard bool
	kind    FailKind
	err     error
}

// invoke calls the property, converting a panic into a failing verdict with
// the recovered payload retained.
func invoke(prop PropFunc, args []Value) (v verdict) {
	defer func() {
		if p := recover(); p != nil {
			v = verdict{kind: FailPanic, err: fmt.Errorf("property panicked: %v", p)}
		}
	}()
	ok, err := prop(args)
	switch {
	case err != nil && errors.Is(err, Discard):
		return verdict{discard: true}
	case err != nil:
		return verdict{kind: FailError, err: err}
	case ok:
		return verdict{pass: true}
	default:
		return verdict{kind: FailFalse}
	}
}

// Run executes the trial loop: resolve generators for the declared
// parameters, draw escalating-size tuples from one seeded source, check the
// property, and on the first failure minimize it. It returns an error only
// for usage and resolution problems; falsification is reported in the
// result.
func (d *Driver) Run(ctx context.Context, params []Descriptor, prop PropFunc) (*RunResult, error) {
	if !atomic.CompareAndSwapInt32(&d.state, driverIdle, driverRunning) {
		return nil, ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&d.state, driverSpent)

	cfg := d.cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		// the only clock read; everything after derives from the seed
		seed = time.Now().UnixNano()
	}

	tupleDesc := Tuple(params...)
	gen, shrink, err := d.registry.Resolve(tupleDesc)
	if err != nil {
		return nil, err
	}

	ctx, log := LoggerWithFields(ctx, logrus.Fields{
		"run_id": uuid.New().String(),
		"seed":   seed,
		"trials": cfg.Trials,
	})

	src := NewSource(seed)
	res := &RunResult{Seed: seed}
	maxAttempts := cfg.Trials * (cfg.MaxDiscardRatio + 1)

	passes := 0
	for attempt := 0; passes < cfg.Trials; attempt++ {
		select {
		case <-ctx.Done():
			res.Status = StatusIncomplete
			res.TrialsRun = passes
			log.WithField("cause", ctx.Err()).Info("run interrupted")
			return res, nil
		default:
		}
		if attempt >= maxAttempts {
			res.Status = StatusIncomplete
			res.TrialsRun = passes
			log.Info("run starved of usable inputs")
			return res, nil
		}

		trial := passes
		if trial > cfg.Trials-1 {
			trial = cfg.Trials - 1
		}
		size := sizeFor(trial, cfg.Trials, cfg.MaxSize)

		tup, err := gen(src, size)
		if err != nil {
			if errors.Is(err, ErrGenerationExhausted) || errors.Is(err, ErrInvalidRange) {
				res.GenErrors = append(res.GenErrors, TrialError{Trial: attempt, Err: err})
				log.WithField("trial", attempt).WithError(err).Debug("trial aborted by generator")
				continue
			}
			return nil, err
		}
		args := tup.Tuple()

		v := invoke(prop, args)
		switch {
		case v.discard:
			res.Discards++
			if res.Discards/(passes+1) >= cfg.MaxDiscardRatio {
				return nil, fmt.Errorf("%w: %d discarded after %d passes",
					ErrTooManyDiscards, res.Discards, passes)
			}
		case v.pass:
			passes++
			log.WithFields(logrus.Fields{"trial": passes, "size": size}).Debug("trial passed")
		default:
			res.TrialsRun = passes
			d.minimize(log, res, tup, shrink, prop, v, cfg)
			return res, nil
		}
	}

	res.Status = StatusAllPassed
	res.TrialsRun = passes
	log.Info("all trials passed")
	return res, nil
}

// minimize hands the failing tuple to the shrink search and fills in the
// failure report, re-verifying the minimized arguments once so the reported
// payload comes from the value actually reported.
func (d *Driver) minimize(log logrus.FieldLogger, res *RunResult, failing Value,
	shrink ShrinkFunc, prop PropFunc, first verdict, cfg Config) {

	log.WithFields(logrus.Fields{"kind": first.kind.String()}).Info("property falsified, shrinking")

	eval := func(c Value) (bool, FailKind, error) {
		v := invoke(prop, c.Tuple())
		if v.pass || v.discard {
			return false, 0, nil
		}
		return true, v.kind, v.err
	}
	outcome := shrinkSearch(failing, shrink, cfg.MaxShrinkSteps, eval)

	kind, payload := first.kind, first.err
	if outcome.steps > 0 {
		kind, payload = outcome.kind, outcome.err
		// confirm the minimized form one last time
		if v := invoke(prop, outcome.value.Tuple()); !v.pass && !v.discard {
			kind, payload = v.kind, v.err
		}
	}

	res.Status = StatusFailed
	res.Failure = &Failure{
		Original:       failing.Tuple(),
		Minimized:      outcome.value.Tuple(),
		Kind:           kind,
		Err:            payload,
		ShrinkSteps:    outcome.steps,
		BudgetExceeded: outcome.budgetExceeded,
	}
	log.WithFields(logrus.Fields{
		"shrink_steps":    outcome.steps,
		"budget_exceeded": outcome.budgetExceeded,
	}).Info("counterexample minimized")
}
