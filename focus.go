package formwire

import "sync"

// Element identifies one rendered piece of the page that can receive focus
// or be scrolled into view. Over HTTP an element is addressed by CSS
// selector; tests substitute fakes.
type Element interface {
	Selector() string
}

// ElementRef is a CSS-selector-backed Element.
type ElementRef string

// Selector returns the CSS selector.
func (e ElementRef) Selector() string { return string(e) }

// ByID returns an Element addressing the element with the given id.
func ByID(id string) ElementRef {
	return ElementRef("#" + id)
}

// FocusScroller performs the focus-and-scroll side effect for an invalid
// field. Implementations must: move keyboard focus to target, then scroll
// container into view only if it is not already fully visible. When smooth
// is false, scrolling must be instant.
//
// The container is never nil; the Coordinator substitutes the focus target
// when no scroll container was registered.
type FocusScroller interface {
	FocusAndScrollIntoViewIfRequired(target, container Element, smooth bool)
}

// Tick is one observation of the form's reactive state, with the
// previous-tick submitting value injected explicitly. Feeding the machine
// prior-vs-current values, rather than diffing renders, keeps the
// transition logic testable without any rendering harness.
type Tick struct {
	PrevSubmitting bool
	Submitting     bool

	// FirstError is the name of the first field in the error set
	// (insertion order), or "" when the set is empty.
	FirstError string

	// SmoothScroll requests smooth scrolling for the focus move.
	// ReducedMotion forces instant scrolling regardless.
	SmoothScroll  bool
	ReducedMotion bool
}

// Watcher states. A watcher arms when the prior tick was mid-submission,
// fires at most once when the submission completes, and re-opens when a
// new submission begins.
type watchState int

const (
	watchIdle watchState = iota
	watchArmed
	watchResolved
)

// Registration pairs a field name with its two element slots: the focus
// target (the input or select element) and the scroll container (usually
// the label). Slots are owned by the rendering component that created the
// registration; the Coordinator only reads them while handling a tick.
type Registration struct {
	name      string
	target    Element
	container Element
	state     watchState
}

// SetTarget installs the focus target element.
func (r *Registration) SetTarget(el Element) { r.target = el }

// SetContainer installs the scroll container element.
func (r *Registration) SetContainer(el Element) { r.container = el }

// observe advances the watcher state machine by one tick and performs the
// focus side effect on a qualifying submission-completion transition.
func (r *Registration) observe(t Tick, fs FocusScroller) {
	if t.Submitting && r.state == watchResolved {
		// A new submission re-opens a watcher that already fired.
		r.state = watchIdle
	}
	if t.PrevSubmitting && r.state == watchIdle {
		r.state = watchArmed
	}
	if r.state != watchArmed || t.Submitting {
		return
	}

	// Submission completed. Fire only if this field is the first error and
	// its focus target is still mounted; an unmounted target is an expected
	// race with async validation, not a failure.
	if t.FirstError == r.name && r.target != nil && fs != nil {
		container := r.container
		if container == nil {
			container = r.target
		}
		smooth := t.SmoothScroll && !t.ReducedMotion
		fs.FocusAndScrollIntoViewIfRequired(r.target, container, smooth)
	}
	r.state = watchResolved
}

// Coordinator tracks field registrations and moves keyboard focus to the
// first invalid field when a submission completes.
//
// Observing the falling edge of the submitting flag, rather than acting as
// soon as errors appear, matters because validation may re-run
// asynchronously during submission: a field that was invalid when the
// submission started may have passed by the time it completes, and must
// not steal focus.
type Coordinator struct {
	mu       sync.Mutex
	scroller FocusScroller
	regs     map[string]*Registration
}

// NewCoordinator creates a Coordinator that performs focus moves through
// the given FocusScroller.
func NewCoordinator(fs FocusScroller) *Coordinator {
	return &Coordinator{
		scroller: fs,
		regs:     make(map[string]*Registration),
	}
}

// Register creates (or replaces) the registration for a field. Element
// slots start empty; the field renderer fills them as it mounts.
func (c *Coordinator) Register(name string) *Registration {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg := &Registration{name: name}
	c.regs[name] = reg
	return reg
}

// Release drops the registration for a field. Ticks observed after release
// are silent no-ops for that field.
func (c *Coordinator) Release(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.regs, name)
}

// Observe advances every watcher by one tick. Call it whenever any of the
// tick's inputs change: the submitting flag, the error set, or the scroll
// preference.
func (c *Coordinator) Observe(t Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, reg := range c.regs {
		reg.observe(t, c.scroller)
	}
}

// FocusIntent is a recorded focus-and-scroll instruction, addressed by CSS
// selector, ready to be shipped to the client.
type FocusIntent struct {
	Target    string
	Container string
	Smooth    bool
}

// Directive is the production FocusScroller for HTTP responses: instead of
// touching a live page it records the pending focus intent, which the form
// handler emits as an HX-Trigger-After-Settle event. After-settle timing
// guarantees the swapped content exists before the client moves focus.
//
// The client runtime owns the visibility check: it scrolls the container
// only if it is not already fully visible.
type Directive struct {
	mu      sync.Mutex
	pending *FocusIntent
}

// FocusAndScrollIntoViewIfRequired records the focus intent.
func (d *Directive) FocusAndScrollIntoViewIfRequired(target, container Element, smooth bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &FocusIntent{
		Target:    target.Selector(),
		Container: container.Selector(),
		Smooth:    smooth,
	}
}

// Pending returns the recorded intent, if any, and clears it.
func (d *Directive) Pending() (FocusIntent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return FocusIntent{}, false
	}
	intent := *d.pending
	d.pending = nil
	return intent, true
}

// TriggerData renders the intent as HX-Trigger event data for the
// "formwire:focus" client event.
func (i FocusIntent) TriggerData() map[string]any {
	behavior := "instant"
	if i.Smooth {
		behavior = "smooth"
	}
	return map[string]any{
		"target":    i.Target,
		"container": i.Container,
		"behavior":  behavior,
	}
}
