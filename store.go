package formwire

import (
	"context"
	"sort"
	"sync"
)

// SubmitFunc handles a form submission whose values passed validation.
type SubmitFunc func(ctx context.Context, values Values) error

// StoreConfig configures a form-state store.
//
// Both validation toggles default to off; NewForm enables validate-on-blur
// and keeps validate-on-change disabled, so validation runs on blur and on
// submit only.
type StoreConfig struct {
	InitialValues    Values
	Validator        Validator
	OnSubmit         SubmitFunc
	ValidateOnChange bool
	ValidateOnBlur   bool
}

// Store holds one form's state: values, ordered errors, touched fields,
// and submission counters. Renderers read from it through FieldProps and
// never write; mutations happen only through SetValue, Blur, and Submit.
type Store struct {
	mu          sync.Mutex
	cfg         StoreConfig
	values      Values
	errors      *Errors
	touched     map[string]bool
	submitCount int
	submitting  bool
}

// NewStore creates a store seeded with the configured initial values.
func NewStore(cfg StoreConfig) *Store {
	values := make(Values, len(cfg.InitialValues))
	for k, v := range cfg.InitialValues {
		values[k] = v
	}
	return &Store{
		cfg:     cfg,
		values:  values,
		errors:  &Errors{},
		touched: make(map[string]bool),
	}
}

// SetValue records a changed field value. Validation runs only when
// validate-on-change is enabled.
func (s *Store) SetValue(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
	if s.cfg.ValidateOnChange {
		s.validateLocked()
	}
}

// Value returns the current value of a field.
func (s *Store) Value(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

// Blur marks a field as touched. Validation runs when validate-on-blur is
// enabled.
func (s *Store) Blur(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touched[name] = true
	if s.cfg.ValidateOnBlur {
		s.validateLocked()
	}
}

// Submit runs one submission attempt: it increments the submit counter,
// raises the submitting flag, marks every field touched, validates, and —
// only when the error set is empty — calls the submit handler. The
// submitting flag falls again before Submit returns, which is the edge the
// focus Coordinator watches for.
func (s *Store) Submit(ctx context.Context) error {
	s.mu.Lock()
	s.submitCount++
	s.submitting = true
	for name := range s.values {
		s.touched[name] = true
	}
	s.validateLocked()

	run := s.errors.Len() == 0 && s.cfg.OnSubmit != nil
	onSubmit := s.cfg.OnSubmit
	values := s.valuesCopyLocked()
	s.mu.Unlock()

	var err error
	if run {
		err = onSubmit(ctx, values)
	}

	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
	return err
}

// Field returns the accessor props for one field, wired with the store's
// change and blur mutations.
func (s *Store) Field(name string) FieldProps {
	s.mu.Lock()
	defer s.mu.Unlock()

	errMsg, _ := s.errors.Get(name)
	return FieldProps{
		Field: Field{
			Name:     name,
			Value:    s.values[name],
			OnChange: func(v any) { s.SetValue(name, v) },
			OnBlur:   func() { s.Blur(name) },
		},
		Meta: Meta{
			Error:   errMsg,
			Touched: s.touched[name],
		},
		Form: s.metaLocked(),
	}
}

// Meta returns the form-level state.
func (s *Store) Meta() FormMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metaLocked()
}

func (s *Store) metaLocked() FormMeta {
	return FormMeta{
		SubmitCount: s.submitCount,
		Submitting:  s.submitting,
		Errors:      s.errors,
	}
}

func (s *Store) validateLocked() {
	if s.cfg.Validator == nil {
		s.errors = &Errors{}
		return
	}
	errs := s.cfg.Validator.Validate(s.valuesCopyLocked())
	if errs == nil {
		errs = &Errors{}
	}
	s.errors = errs
}

func (s *Store) valuesCopyLocked() Values {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Snapshot is the serializable slice of store state that rides the hidden
// state input between requests. Errors are recomputed, never carried.
type Snapshot struct {
	Values      Values   `msgpack:"v"`
	Touched     []string `msgpack:"t,omitempty"`
	SubmitCount int      `msgpack:"c,omitempty"`
}

// Snapshot captures the store state for encoding.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := make([]string, 0, len(s.touched))
	for name, t := range s.touched {
		if t {
			touched = append(touched, name)
		}
	}
	sort.Strings(touched)

	return Snapshot{
		Values:      s.valuesCopyLocked(),
		Touched:     touched,
		SubmitCount: s.submitCount,
	}
}

// Restore rehydrates the store from a decoded snapshot. Only fields that
// exist in the snapshot overwrite the seeded initial values.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range snap.Values {
		s.values[k] = v
	}
	for _, name := range snap.Touched {
		s.touched[name] = true
	}
	s.submitCount = snap.SubmitCount
}
