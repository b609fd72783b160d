package formwire

// Design-system class names applied by the field renderers. The names
// follow the Bootstrap form conventions; applications restyle by targeting
// these classes, not by configuring the renderers.
const (
	// Structural classes for text-like inputs.
	ClassFormControl = "form-control"
	ClassFormLabel   = "form-label"

	// Structural classes for checkbox/radio inputs (disjoint set from the
	// text-like classes).
	ClassFormCheckInput = "form-check-input"
	ClassFormCheckLabel = "form-check-label"

	// Select element and floating-label wrapper.
	ClassFormSelect   = "form-select"
	ClassFormFloating = "form-floating"

	// Validity classes. Applied only after the form's first submission
	// attempt; see FieldProps and the renderer contracts.
	ClassIsValid   = "is-valid"
	ClassIsInvalid = "is-invalid"

	// Container for the inline error message.
	ClassInvalidFeedback = "invalid-feedback"
)

// feedbackID computes the id of a field's inline error container, which
// aria-describedby points at while the field is in error.
func feedbackID(id string) string {
	return id + "-feedback"
}

// labelID computes the id of a field's label element, used as the scroll
// container when moving focus to an invalid field.
func labelID(id string) string {
	return id + "-label"
}
