package tour

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/logging"
)

// Locator resolves a step's target selector to an on-screen rectangle.
// The second result is false when no matching element is on screen.
type Locator interface {
	Find(selector string) (Rect, bool)
}

// Presenter renders and tears down the walkthrough chrome. It is purely
// reactive; all decisions stay in the Sequencer. There is no scroll
// operation: the dashboard always fits the viewport, so every drawn
// target is already in view.
type Presenter interface {
	// ShowStep renders the callout and emphasis for a resolved step.
	ShowStep(view StepView)

	// Teardown removes the overlay, callout, and any emphasis styling.
	Teardown()

	// ShowCompletionBanner displays the transient completion banner;
	// the presenter dismisses it on its own after a fixed duration.
	ShowCompletionBanner()

	// Viewport is the current visible area.
	Viewport() Rect

	// CalloutSize is the rendered size of the callout for a step.
	CalloutSize(step Step) Size
}

// FlagStore persists the walkthrough's boolean-ish flags.
// *db.PrefsRepository satisfies it.
type FlagStore interface {
	IsTrue(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Notifier reports tour completion upstream. Best effort: the sequencer
// logs failures and never retries or surfaces them.
type Notifier interface {
	Completed(ctx context.Context) error
}

// Scheduler drives the delayed step transitions. *Debouncer satisfies it;
// tests substitute a synchronous implementation.
type Scheduler interface {
	Trigger(fn func())
	Cancel()
}

// StepView is everything the presenter needs to render one step.
type StepView struct {
	// Step is the catalog entry being shown.
	Step Step

	// Index is the zero-based catalog index.
	Index int

	// Position is the 1-based counter shown to the user. Skipped steps
	// still count: position reflects the true catalog index.
	Position int

	// Total is the full catalog length, regardless of skipped steps.
	Total int

	// Progress is Position/Total in [0, 1].
	Progress float64

	// Target is the resolved target rectangle.
	Target Rect

	// Placement is the computed callout position.
	Placement Point
}

// Sequencer owns the walkthrough position and drives every transition.
// One instance runs at a time.
//
// Dismissing mid-tour (End) records nothing, while Skip from the welcome
// prompt records the skipped flag. The asymmetry is inherited behavior;
// product has not decided whether mid-tour abandonment should also
// suppress future prompts.
type Sequencer struct {
	locator   Locator
	presenter Presenter
	flags     FlagStore
	notifier  Notifier
	schedule  Scheduler
	logger    zerolog.Logger

	catalog Catalog
	current int
	active  bool
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithScheduler overrides the transition scheduler.
func WithScheduler(s Scheduler) SequencerOption {
	return func(seq *Sequencer) {
		seq.schedule = s
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) SequencerOption {
	return func(seq *Sequencer) {
		seq.logger = logger
	}
}

// NewSequencer creates a sequencer with the given collaborators.
func NewSequencer(locator Locator, presenter Presenter, flags FlagStore, notifier Notifier, opts ...SequencerOption) *Sequencer {
	seq := &Sequencer{
		locator:   locator,
		presenter: presenter,
		flags:     flags,
		notifier:  notifier,
		schedule:  NewDebouncer(DefaultTransitionDelay),
		logger:    logging.Component("tour"),
		current:   -1,
	}
	for _, opt := range opts {
		opt(seq)
	}
	return seq
}

// Active reports whether a walkthrough is currently running.
func (s *Sequencer) Active() bool { return s.active }

// CurrentIndex returns the zero-based index of the shown step, -1 when
// inactive.
func (s *Sequencer) CurrentIndex() int { return s.current }

// Start begins the walkthrough over the given catalog. An empty catalog
// ends immediately: no overlay is ever created for a zero-step tour.
func (s *Sequencer) Start(ctx context.Context, catalog Catalog) {
	s.catalog = catalog
	if len(catalog) == 0 {
		s.active = false
		s.current = -1
		s.logger.Debug().Msg("empty catalog, tour ends without presenting")
		return
	}
	s.active = true
	s.current = -1
	s.showStep(ctx, 0)
}

// Advance moves to the next step after the transition delay, or completes
// the walkthrough when already on the last step.
func (s *Sequencer) Advance(ctx context.Context) {
	if !s.active {
		return
	}
	if s.current >= len(s.catalog)-1 {
		s.Complete(ctx)
		return
	}
	next := s.current + 1
	s.schedule.Trigger(func() {
		s.showStep(ctx, next)
	})
}

// Retreat moves to the previous step after the transition delay. At the
// first step it is a no-op.
func (s *Sequencer) Retreat(ctx context.Context) {
	if !s.active || s.current <= 0 {
		return
	}
	prev := s.current - 1
	s.schedule.Trigger(func() {
		s.showStep(ctx, prev)
	})
}

// End terminates the walkthrough unconditionally, tearing down all chrome.
// Idempotent; records nothing.
func (s *Sequencer) End() {
	if !s.active {
		return
	}
	s.active = false
	s.current = -1
	s.schedule.Cancel()
	s.presenter.Teardown()
}

// Skip records that the user declined the tour from the welcome prompt.
// It is only meaningful before Start; it does not touch a running tour.
func (s *Sequencer) Skip(ctx context.Context) {
	if err := s.flags.Set(ctx, db.PrefTutorialSkipped, "true"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record tour skip")
	}
}

// Complete ends the walkthrough, persists completion, notifies upstream
// (best effort), and shows the transient completion banner.
func (s *Sequencer) Complete(ctx context.Context) {
	s.End()
	if err := s.flags.Set(ctx, db.PrefTutorialCompleted, "true"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record tour completion")
	}
	if err := s.notifier.Completed(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("tour completion notification failed")
	}
	s.presenter.ShowCompletionBanner()
}

// Restart clears the completion and skip flags, then starts the walkthrough
// over the given catalog from the top. The catalog is passed in so a restart
// works even when no tour has run yet. Explicit user action only; it bypasses
// the welcome prompt.
func (s *Sequencer) Restart(ctx context.Context, catalog Catalog) {
	if err := s.flags.Delete(ctx, db.PrefTutorialCompleted); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear completion flag")
	}
	if err := s.flags.Delete(ctx, db.PrefTutorialSkipped); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear skip flag")
	}
	s.End()
	s.Start(ctx, catalog)
}

// showStep displays the step at index, walking forward past any step whose
// target is not on screen. Indexes outside the catalog end the tour; on the
// last step that means Advance completes rather than running out of range.
func (s *Sequencer) showStep(ctx context.Context, index int) {
	if !s.active {
		return
	}
	for i := index; ; i++ {
		if i < 0 || i >= len(s.catalog) {
			s.End()
			return
		}
		step := s.catalog[i]
		target, ok := s.locator.Find(step.Target)
		if !ok {
			// Missing target: skip silently. The displayed total stays
			// the full catalog length.
			s.logger.Debug().Str("target", step.Target).Int("index", i).Msg("step target not found, skipping")
			continue
		}

		callout := s.presenter.CalloutSize(step)
		viewport := s.presenter.Viewport()
		s.current = i
		s.presenter.ShowStep(StepView{
			Step:      step,
			Index:     i,
			Position:  i + 1,
			Total:     len(s.catalog),
			Progress:  float64(i+1) / float64(len(s.catalog)),
			Target:    target,
			Placement: Place(target, callout, viewport, step.Side),
		})
		return
	}
}
