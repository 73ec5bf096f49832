package tour

import (
	"context"
	"errors"
	"testing"

	"github.com/sclera-app/sclera/internal/db"
)

// fakeLocator resolves selectors from a fixed map.
type fakeLocator struct {
	targets map[string]Rect
}

func (l *fakeLocator) Find(selector string) (Rect, bool) {
	rect, ok := l.targets[selector]
	return rect, ok
}

// fakePresenter records every call the sequencer makes.
type fakePresenter struct {
	views     []StepView
	teardowns int
	banners   int
	viewport  Rect
	callout   Size
}

func (p *fakePresenter) ShowStep(view StepView)  { p.views = append(p.views, view) }
func (p *fakePresenter) Teardown()               { p.teardowns++ }
func (p *fakePresenter) ShowCompletionBanner()   { p.banners++ }
func (p *fakePresenter) Viewport() Rect          { return p.viewport }
func (p *fakePresenter) CalloutSize(Step) Size   { return p.callout }

// fakeFlags is an in-memory FlagStore.
type fakeFlags struct {
	values map[string]string
	err    error
}

func newFakeFlags() *fakeFlags {
	return &fakeFlags{values: make(map[string]string)}
}

func (f *fakeFlags) IsTrue(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.values[key] == "true", nil
}

func (f *fakeFlags) Set(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeFlags) Delete(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.values, key)
	return nil
}

// fakeNotifier counts completion calls.
type fakeNotifier struct {
	calls int
	err   error
}

func (n *fakeNotifier) Completed(context.Context) error {
	n.calls++
	return n.err
}

// immediateScheduler runs continuations synchronously.
type immediateScheduler struct{}

func (immediateScheduler) Trigger(fn func()) { fn() }
func (immediateScheduler) Cancel()           {}

// manualScheduler holds the newest continuation until Run is called.
type manualScheduler struct {
	pending func()
}

func (s *manualScheduler) Trigger(fn func()) { s.pending = fn }
func (s *manualScheduler) Cancel()           { s.pending = nil }
func (s *manualScheduler) Run() {
	if s.pending != nil {
		fn := s.pending
		s.pending = nil
		fn()
	}
}

func testCatalog(n int) Catalog {
	catalog := make(Catalog, 0, n)
	for i := 0; i < n; i++ {
		catalog = append(catalog, Step{
			Target: "target-" + string(rune('a'+i)),
			Title:  "Step " + string(rune('A'+i)),
			Side:   SideBottom,
		})
	}
	return catalog
}

func allTargets(catalog Catalog) map[string]Rect {
	targets := make(map[string]Rect, len(catalog))
	for i, step := range catalog {
		targets[step.Target] = Rect{Top: 100 + i*50, Left: 100, Width: 40, Height: 10}
	}
	return targets
}

func newTestSequencer(catalog Catalog, targets map[string]Rect) (*Sequencer, *fakePresenter, *fakeFlags, *fakeNotifier) {
	presenter := &fakePresenter{
		viewport: Rect{Width: 800, Height: 600},
		callout:  Size{Width: 120, Height: 60},
	}
	flags := newFakeFlags()
	notifier := &fakeNotifier{}
	seq := NewSequencer(
		&fakeLocator{targets: targets},
		presenter,
		flags,
		notifier,
		WithScheduler(immediateScheduler{}),
	)
	return seq, presenter, flags, notifier
}

func TestSequencerWalksToCompletion(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(3)
	seq, presenter, flags, notifier := newTestSequencer(catalog, allTargets(catalog))

	seq.Start(ctx, catalog)
	if !seq.Active() {
		t.Fatal("expected sequencer to be active after start")
	}
	if seq.CurrentIndex() != 0 {
		t.Fatalf("expected index 0, got %d", seq.CurrentIndex())
	}

	// N-1 advances land on the last index.
	seq.Advance(ctx)
	seq.Advance(ctx)
	if seq.CurrentIndex() != 2 {
		t.Fatalf("expected index 2, got %d", seq.CurrentIndex())
	}
	if notifier.calls != 0 {
		t.Fatalf("notifier fired before completion: %d calls", notifier.calls)
	}

	// Next on the final step completes instead of going out of bounds.
	seq.Advance(ctx)
	if seq.Active() {
		t.Error("expected sequencer inactive after completion")
	}
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialCompleted); !got {
		t.Error("expected completion flag to be persisted")
	}
	if notifier.calls != 1 {
		t.Errorf("expected exactly one completion notification, got %d", notifier.calls)
	}
	if presenter.banners != 1 {
		t.Errorf("expected one completion banner, got %d", presenter.banners)
	}
	if presenter.teardowns != 1 {
		t.Errorf("expected one teardown, got %d", presenter.teardowns)
	}
}

func TestSequencerRetreat(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(3)
	seq, _, _, _ := newTestSequencer(catalog, allTargets(catalog))

	seq.Start(ctx, catalog)

	// Retreat at index 0 is a no-op.
	seq.Retreat(ctx)
	if seq.CurrentIndex() != 0 {
		t.Errorf("expected retreat at 0 to be a no-op, got index %d", seq.CurrentIndex())
	}

	seq.Advance(ctx)
	seq.Retreat(ctx)
	if seq.CurrentIndex() != 0 {
		t.Errorf("expected index 0 after retreat, got %d", seq.CurrentIndex())
	}
}

func TestSequencerEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	seq, presenter, _, _ := newTestSequencer(nil, nil)

	seq.Start(ctx, nil)
	if seq.Active() {
		t.Error("expected sequencer inactive for empty catalog")
	}
	if len(presenter.views) != 0 {
		t.Errorf("expected no steps shown, got %d", len(presenter.views))
	}
	// No overlay is created for a zero-step tour, so nothing to tear down.
	if presenter.teardowns != 0 {
		t.Errorf("expected no teardown for empty catalog, got %d", presenter.teardowns)
	}
}

func TestSequencerSkipsMissingTargets(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(3)
	targets := allTargets(catalog)
	delete(targets, catalog[1].Target)
	seq, presenter, _, _ := newTestSequencer(catalog, targets)

	seq.Start(ctx, catalog)
	seq.Advance(ctx)

	if len(presenter.views) != 2 {
		t.Fatalf("expected 2 rendered steps, got %d", len(presenter.views))
	}
	// The user sees "Step 1 of 3" then "Step 3 of 3": the middle step is
	// never shown, but the counter keeps its true index and the total
	// keeps the full catalog length.
	first, second := presenter.views[0], presenter.views[1]
	if first.Position != 1 || first.Total != 3 {
		t.Errorf("expected position 1 of 3, got %d of %d", first.Position, first.Total)
	}
	if second.Position != 3 || second.Total != 3 {
		t.Errorf("expected position 3 of 3, got %d of %d", second.Position, second.Total)
	}
}

func TestSequencerAllTargetsMissing(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(2)
	seq, presenter, _, notifier := newTestSequencer(catalog, nil)

	seq.Start(ctx, catalog)
	if seq.Active() {
		t.Error("expected sequencer inactive when no target resolves")
	}
	if len(presenter.views) != 0 {
		t.Errorf("expected no steps shown, got %d", len(presenter.views))
	}
	// Ending is not completing.
	if notifier.calls != 0 {
		t.Errorf("expected no notification, got %d", notifier.calls)
	}
}

func TestSequencerEndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(2)
	seq, presenter, flags, _ := newTestSequencer(catalog, allTargets(catalog))

	seq.Start(ctx, catalog)
	seq.End()
	seq.End()

	if presenter.teardowns != 1 {
		t.Errorf("expected one teardown, got %d", presenter.teardowns)
	}
	if seq.CurrentIndex() != -1 {
		t.Errorf("expected index -1 after end, got %d", seq.CurrentIndex())
	}
	// Mid-tour dismissal records nothing.
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialSkipped); got {
		t.Error("end must not record the skipped flag")
	}
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialCompleted); got {
		t.Error("end must not record the completed flag")
	}
}

func TestSequencerSkipRecordsFlag(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(2)
	seq, _, flags, _ := newTestSequencer(catalog, allTargets(catalog))

	seq.Skip(ctx)
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialSkipped); !got {
		t.Error("expected skip flag to be recorded")
	}
}

func TestSequencerRapidAdvanceLastWins(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(4)
	presenter := &fakePresenter{
		viewport: Rect{Width: 800, Height: 600},
		callout:  Size{Width: 120, Height: 60},
	}
	schedule := &manualScheduler{}
	seq := NewSequencer(
		&fakeLocator{targets: allTargets(catalog)},
		presenter,
		newFakeFlags(),
		&fakeNotifier{},
		WithScheduler(schedule),
	)

	seq.Start(ctx, catalog)

	// A rapid double-press queues one transition, not two.
	seq.Advance(ctx)
	seq.Advance(ctx)
	schedule.Run()
	if seq.CurrentIndex() != 1 {
		t.Errorf("expected index 1 after coalesced double advance, got %d", seq.CurrentIndex())
	}
	schedule.Run()
	if seq.CurrentIndex() != 1 {
		t.Errorf("expected no further transition, got index %d", seq.CurrentIndex())
	}
}

func TestSequencerEndCancelsPendingTransition(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(3)
	schedule := &manualScheduler{}
	presenter := &fakePresenter{
		viewport: Rect{Width: 800, Height: 600},
		callout:  Size{Width: 120, Height: 60},
	}
	seq := NewSequencer(
		&fakeLocator{targets: allTargets(catalog)},
		presenter,
		newFakeFlags(),
		&fakeNotifier{},
		WithScheduler(schedule),
	)

	seq.Start(ctx, catalog)
	seq.Advance(ctx)
	seq.End()
	schedule.Run()

	if len(presenter.views) != 1 {
		t.Errorf("expected pending transition cancelled by end, got %d views", len(presenter.views))
	}
}

func TestSequencerCompleteSwallowsNotifierError(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(1)
	presenter := &fakePresenter{
		viewport: Rect{Width: 800, Height: 600},
		callout:  Size{Width: 120, Height: 60},
	}
	flags := newFakeFlags()
	notifier := &fakeNotifier{err: errors.New("connection refused")}
	seq := NewSequencer(
		&fakeLocator{targets: allTargets(catalog)},
		presenter,
		flags,
		notifier,
		WithScheduler(immediateScheduler{}),
	)

	seq.Start(ctx, catalog)
	seq.Advance(ctx)

	// Local state wins: persistence succeeded before the call fired.
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialCompleted); !got {
		t.Error("expected completion flag despite notifier failure")
	}
	if seq.Active() {
		t.Error("expected sequencer inactive despite notifier failure")
	}
}

func TestSequencerRestart(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(2)
	seq, presenter, flags, _ := newTestSequencer(catalog, allTargets(catalog))

	seq.Start(ctx, catalog)
	seq.Advance(ctx)
	seq.Advance(ctx) // completes

	flags.Set(ctx, db.PrefTutorialSkipped, "true")

	seq.Restart(ctx, catalog)
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialCompleted); got {
		t.Error("expected completion flag cleared on restart")
	}
	if got, _ := flags.IsTrue(ctx, db.PrefTutorialSkipped); got {
		t.Error("expected skip flag cleared on restart")
	}
	if !seq.Active() || seq.CurrentIndex() != 0 {
		t.Errorf("expected restart at step 0, got active=%v index=%d", seq.Active(), seq.CurrentIndex())
	}
	if last := presenter.views[len(presenter.views)-1]; last.Position != 1 {
		t.Errorf("expected restarted tour to show step 1, got %d", last.Position)
	}
}

func TestSequencerRestartBeforeAnyTour(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog(3)
	seq, presenter, flags, _ := newTestSequencer(catalog, allTargets(catalog))

	flags.Set(ctx, db.PrefTutorialCompleted, "true")

	// No Start has happened; restart must still begin the walkthrough.
	seq.Restart(ctx, catalog)

	if got, _ := flags.IsTrue(ctx, db.PrefTutorialCompleted); got {
		t.Error("expected completion flag cleared on restart")
	}
	if !seq.Active() {
		t.Fatal("expected restart to begin the walkthrough")
	}
	if len(presenter.views) == 0 || presenter.views[0].Position != 1 {
		t.Fatalf("expected step 1 shown, got %+v", presenter.views)
	}
}
