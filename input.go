package formwire

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// TextFieldOptions is the presentation surface of TextField.
type TextFieldOptions struct {
	// Label is the visible label text, bound to the input via for/id.
	Label string

	// ID overrides the input element id. Defaults to the field name.
	ID string

	// Type is the input type attribute. Defaults to "text". Checkbox and
	// radio inputs use the form-check class set instead of form-control.
	Type string

	// LabelAttrs and InputAttrs are extra attributes merged onto the label
	// and input elements. Keys the renderer owns (class, for, id on the
	// label; class, id, name, type, value, checked on the input) are
	// dropped.
	LabelAttrs templ.Attributes
	InputAttrs templ.Attributes

	// Focus, when set, registers the input as focus target and the label
	// as scroll container under the field's name.
	Focus *Coordinator
}

// TextField renders a labeled input with its inline error container.
//
// The invalid-feedback container is always mounted, even without an error,
// so the element aria-describedby points at never appears or disappears
// between renders. Validity classes follow the display policy documented
// on the package: nothing before the first submission attempt, then
// is-invalid or is-valid.
func TextField(props FieldProps, opts TextFieldOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := opts.ID
		if id == "" {
			id = props.Field.Name
		}
		inputType := opts.Type
		if inputType == "" {
			inputType = "text"
		}

		if opts.Focus != nil {
			reg := opts.Focus.Register(props.Field.Name)
			reg.SetTarget(ByID(id))
			reg.SetContainer(ByID(labelID(id)))
		}

		labelClass, inputClass := ClassFormLabel, ClassFormControl
		if isCheckType(inputType) {
			labelClass, inputClass = ClassFormCheckLabel, ClassFormCheckInput
		}

		var sb strings.Builder
		writeFieldLabel(&sb, labelClass, id, opts.Label, opts.LabelAttrs)
		writeInput(&sb, inputClass, id, inputType, props, opts.InputAttrs)
		writeFeedback(&sb, id, props.Meta.Error, true)

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func isCheckType(inputType string) bool {
	return inputType == "checkbox" || inputType == "radio"
}

// isChecked interprets a check-type field value: bools directly, strings by
// their form wire encoding ("on" is the HTML default for a valueless box).
func isChecked(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "on"
	}
	return false
}

// validityClass applies the display policy: no class before the first
// submission attempt, then is-invalid iff the field is in error.
func validityClass(props FieldProps) string {
	if props.Form.SubmitCount == 0 {
		return ""
	}
	if props.Meta.Error != "" {
		return ClassIsInvalid
	}
	return ClassIsValid
}

func writeFieldLabel(sb *strings.Builder, class, id, label string, attrs templ.Attributes) {
	sb.WriteString(`<label class="` + class + `" for="` + html.EscapeString(id) + `" id="` + html.EscapeString(labelID(id)) + `"`)
	appendAttrsExcept(sb, attrs, "class", "for", "id")
	sb.WriteString(`>` + html.EscapeString(label) + `</label>`)
}

func writeInput(sb *strings.Builder, class, id, inputType string, props FieldProps, attrs templ.Attributes) {
	sb.WriteString(`<input class="` + class)
	if vc := validityClass(props); vc != "" {
		sb.WriteString(` ` + vc)
	}
	sb.WriteString(`" id="` + html.EscapeString(id) + `"`)
	sb.WriteString(` name="` + html.EscapeString(props.Field.Name) + `"`)
	sb.WriteString(` type="` + html.EscapeString(inputType) + `"`)
	if isCheckType(inputType) {
		// Check types post a constant; their state is the checked flag.
		sb.WriteString(` value="true"`)
		if isChecked(props.Field.Value) {
			sb.WriteString(` checked`)
		}
	} else {
		sb.WriteString(` value="` + html.EscapeString(props.ValueString()) + `"`)
	}
	writeValidityAria(sb, id, props.Meta.Error)
	appendAttrsExcept(sb, attrs, "class", "id", "name", "type", "value", "checked")
	sb.WriteString(`>`)
}

// writeValidityAria emits aria-invalid and aria-describedby. Unlike the
// visual classes, aria-invalid tracks error presence unconditionally —
// assistive technology should not wait for a submission attempt.
func writeValidityAria(sb *strings.Builder, id, errMsg string) {
	if errMsg == "" {
		return
	}
	sb.WriteString(` aria-invalid="true"`)
	sb.WriteString(` aria-describedby="` + html.EscapeString(feedbackID(id)) + `"`)
}

// writeFeedback emits the inline error container. Text fields always mount
// it; selects mount it only while an error is present.
func writeFeedback(sb *strings.Builder, id, errMsg string, alwaysMount bool) {
	if errMsg == "" && !alwaysMount {
		return
	}
	sb.WriteString(`<div class="` + ClassInvalidFeedback + `" id="` + html.EscapeString(feedbackID(id)) + `">`)
	sb.WriteString(html.EscapeString(errMsg))
	sb.WriteString(`</div>`)
}
