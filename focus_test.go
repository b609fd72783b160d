package formwire

import "testing"

type scrollCall struct {
	target    string
	container string
	smooth    bool
}

type fakeScroller struct {
	calls []scrollCall
}

func (f *fakeScroller) FocusAndScrollIntoViewIfRequired(target, container Element, smooth bool) {
	f.calls = append(f.calls, scrollCall{
		target:    target.Selector(),
		container: container.Selector(),
		smooth:    smooth,
	})
}

// completedSubmission is the canonical tick pair: a submission was seen in
// flight, then completed with the given error set.
func completedSubmission(co *Coordinator, firstError string, smooth, reduced bool) {
	co.Observe(Tick{PrevSubmitting: false, Submitting: true})
	co.Observe(Tick{
		PrevSubmitting: true,
		Submitting:     false,
		FirstError:     firstError,
		SmoothScroll:   smooth,
		ReducedMotion:  reduced,
	})
}

func TestFocusMovesToFirstErrorField(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)

	reg := co.Register("email")
	reg.SetTarget(ByID("email"))
	reg.SetContainer(ByID("email-label"))

	completedSubmission(co, "email", true, false)

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want 1", len(fs.calls))
	}
	call := fs.calls[0]
	if call.target != "#email" {
		t.Errorf("target = %q, want %q", call.target, "#email")
	}
	if call.container != "#email-label" {
		t.Errorf("container = %q, want %q", call.container, "#email-label")
	}
	if !call.smooth {
		t.Error("smooth = false, want true")
	}
}

func TestFocusIdempotentAcrossRepeatedRenders(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))

	co.Observe(Tick{PrevSubmitting: false, Submitting: true})
	edge := Tick{PrevSubmitting: true, Submitting: false, FirstError: "email"}
	co.Observe(edge)
	// Re-renders within the same transition repeat the same observation.
	co.Observe(edge)
	co.Observe(Tick{PrevSubmitting: false, Submitting: false, FirstError: "email"})

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want exactly 1", len(fs.calls))
	}
}

func TestFocusNoopWhenTargetUnmounted(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	co.Register("email") // slots never filled: field unmounted

	completedSubmission(co, "email", true, false)

	if len(fs.calls) != 0 {
		t.Fatalf("focus calls = %d, want 0 for unmounted target", len(fs.calls))
	}
}

func TestFocusNoopForOtherField(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("name")
	reg.SetTarget(ByID("name"))

	completedSubmission(co, "email", true, false)

	if len(fs.calls) != 0 {
		t.Fatalf("focus calls = %d, want 0 when another field holds the first error", len(fs.calls))
	}
}

func TestFocusSkippedWhenFieldRecoveredDuringSubmission(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))

	// Invalid when submission started, valid by the time it completed.
	co.Observe(Tick{PrevSubmitting: false, Submitting: true, FirstError: "email"})
	co.Observe(Tick{PrevSubmitting: true, Submitting: false, FirstError: ""})

	if len(fs.calls) != 0 {
		t.Fatalf("focus calls = %d, want 0 once the field passed validation", len(fs.calls))
	}
}

func TestFocusContainerFallsBackToTarget(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))
	// No scroll container registered.

	completedSubmission(co, "email", true, false)

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want 1", len(fs.calls))
	}
	if fs.calls[0].container != "#email" {
		t.Errorf("container = %q, want fallback to target %q", fs.calls[0].container, "#email")
	}
}

func TestFocusReducedMotionForcesInstantScroll(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))

	completedSubmission(co, "email", true, true)

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want 1", len(fs.calls))
	}
	if fs.calls[0].smooth {
		t.Error("smooth = true, want false under reduced motion")
	}
}

func TestFocusRearmsForNextSubmission(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))

	completedSubmission(co, "email", false, false)
	completedSubmission(co, "email", false, false)

	if len(fs.calls) != 2 {
		t.Fatalf("focus calls = %d, want one per submission", len(fs.calls))
	}
}

func TestFocusReleasedRegistrationIsSilent(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))
	co.Release("email")

	completedSubmission(co, "email", false, false)

	if len(fs.calls) != 0 {
		t.Fatalf("focus calls = %d, want 0 after release", len(fs.calls))
	}
}

func TestFocusSingleTickEdge(t *testing.T) {
	// A short submission can surface as a single observed edge:
	// previous tick submitting, current tick complete.
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	reg := co.Register("email")
	reg.SetTarget(ByID("email"))

	co.Observe(Tick{PrevSubmitting: true, Submitting: false, FirstError: "email"})

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want 1 on a single-tick edge", len(fs.calls))
	}
}

func TestDirectiveRecordsPendingIntent(t *testing.T) {
	d := &Directive{}
	d.FocusAndScrollIntoViewIfRequired(ByID("email"), ByID("email-label"), false)

	intent, ok := d.Pending()
	if !ok {
		t.Fatal("expected a pending intent")
	}
	if intent.Target != "#email" || intent.Container != "#email-label" {
		t.Errorf("intent = %+v", intent)
	}

	data := intent.TriggerData()
	if data["behavior"] != "instant" {
		t.Errorf("behavior = %v, want instant", data["behavior"])
	}

	if _, ok := d.Pending(); ok {
		t.Error("Pending should clear the recorded intent")
	}
}
