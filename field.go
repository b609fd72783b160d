package formwire

import "fmt"

// Values holds a form's field values keyed by field name.
type Values map[string]any

// Field is the input-facing part of a field accessor: identity, current
// value, and the store mutations wired to user interaction.
type Field struct {
	Name     string
	Value    any
	OnChange func(value any)
	OnBlur   func()
}

// Meta is the per-field validation state.
type Meta struct {
	Error   string
	Touched bool
}

// FormMeta is the form-level state a renderer may read: how many submission
// attempts have happened, whether one is in flight, and the full error set.
type FormMeta struct {
	SubmitCount int
	Submitting  bool
	Errors      *Errors
}

// FieldProps is everything a field renderer needs, read from the store each
// render. Renderers never mutate the store; they only read props.
type FieldProps struct {
	Field Field
	Meta  Meta
	Form  FormMeta
}

// ValueString renders the field value for a controlled input. Nil becomes
// the empty string so the rendered value attribute is always present.
func (p FieldProps) ValueString() string {
	if p.Field.Value == nil {
		return ""
	}
	if s, ok := p.Field.Value.(string); ok {
		return s
	}
	return fmt.Sprint(p.Field.Value)
}

// Errors is an insertion-ordered mapping of field name to error message.
//
// Order matters: the "first error" that receives focus after a failed
// submission is the first validation failure recorded, not the first field
// in DOM order. The zero value is ready to use.
type Errors struct {
	fields []string
	msgs   map[string]string
}

// Set records an error message for a field. The first Set for a field
// fixes its position; setting it again updates the message in place.
func (e *Errors) Set(field, msg string) {
	if e.msgs == nil {
		e.msgs = make(map[string]string)
	}
	if _, ok := e.msgs[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.msgs[field] = msg
}

// Get returns the error message for a field, if any.
func (e *Errors) Get(field string) (string, bool) {
	if e == nil || e.msgs == nil {
		return "", false
	}
	msg, ok := e.msgs[field]
	return msg, ok
}

// First returns the name of the first field that failed validation.
// Returns "" when the error set is empty.
func (e *Errors) First() string {
	if e == nil || len(e.fields) == 0 {
		return ""
	}
	return e.fields[0]
}

// Len returns the number of fields in error.
func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.fields)
}

// Fields returns the field names in insertion order.
func (e *Errors) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Validator computes the error set for a candidate value map. A nil or
// empty result means the values are valid.
type Validator interface {
	Validate(values Values) *Errors
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(values Values) *Errors

// Validate calls fn.
func (fn ValidatorFunc) Validate(values Values) *Errors {
	return fn(values)
}
