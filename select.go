package formwire

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// SelectFieldOptions is the presentation surface of SelectField.
type SelectFieldOptions struct {
	// Label is the visible label text, bound to the select via for/id.
	Label string

	// ID overrides the select element id. Defaults to the field name.
	ID string

	// Options is the option tree rendered inside the select.
	Options []OptionNode

	// FloatingLabel renders the label after the select, wrapped in a
	// form-floating container — the DOM order the floating effect needs.
	FloatingLabel bool

	// LabelAttrs and SelectAttrs are extra attributes merged onto the
	// label and select elements. Keys the renderer owns (class, for, id on
	// the label; class, id, name on the select) are dropped.
	LabelAttrs  templ.Attributes
	SelectAttrs templ.Attributes

	// Focus, when set, registers the select as focus target and the label
	// as scroll container under the field's name.
	Focus *Coordinator
}

// SelectField renders a labeled select with its option tree.
//
// Validity classes and ARIA wiring follow the same contract as TextField.
// The inline error container is mounted only while an error is present.
func SelectField(props FieldProps, opts SelectFieldOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := opts.ID
		if id == "" {
			id = props.Field.Name
		}

		if opts.Focus != nil {
			reg := opts.Focus.Register(props.Field.Name)
			reg.SetTarget(ByID(id))
			reg.SetContainer(ByID(labelID(id)))
		}

		var sb strings.Builder
		if opts.FloatingLabel {
			sb.WriteString(`<div class="` + ClassFormFloating + `">`)
			if err := writeSelect(&sb, id, props, opts); err != nil {
				return err
			}
			writeFieldLabel(&sb, ClassFormLabel, id, opts.Label, opts.LabelAttrs)
		} else {
			writeFieldLabel(&sb, ClassFormLabel, id, opts.Label, opts.LabelAttrs)
			if err := writeSelect(&sb, id, props, opts); err != nil {
				return err
			}
		}
		writeFeedback(&sb, id, props.Meta.Error, false)
		if opts.FloatingLabel {
			sb.WriteString(`</div>`)
		}

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func writeSelect(sb *strings.Builder, id string, props FieldProps, opts SelectFieldOptions) error {
	sb.WriteString(`<select class="` + ClassFormSelect)
	if vc := validityClass(props); vc != "" {
		sb.WriteString(` ` + vc)
	}
	sb.WriteString(`" id="` + html.EscapeString(id) + `"`)
	sb.WriteString(` name="` + html.EscapeString(props.Field.Name) + `"`)
	writeValidityAria(sb, id, props.Meta.Error)
	appendAttrsExcept(sb, opts.SelectAttrs, "class", "id", "name")
	sb.WriteString(`>`)
	if err := writeOptionNodes(sb, opts.Options, props.ValueString()); err != nil {
		return err
	}
	sb.WriteString(`</select>`)
	return nil
}
