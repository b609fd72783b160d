package formwire

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"runtime"

	"github.com/a-h/templ"

	"github.com/formwire/formwire/lib/encoding"
)

// stateField is the reserved name of the hidden input carrying the encoded
// store snapshot between requests.
const stateField = "_state"

// FormConfig configures a form: its identity, initial state, validation,
// and submit handling.
type FormConfig struct {
	// Name identifies the form; it seeds the URL prefix and element id.
	Name string

	// InitialValues seed the store on first render. Their keys also define
	// which posted fields the handler accepts.
	InitialValues Values

	// Validator computes the error set on blur and on submit. The form
	// wrapper never validates on change.
	Validator Validator

	// OnSubmit runs when a submission passes validation.
	OnSubmit func(ctx context.Context, values Values) Result

	// SmoothScroll requests smooth scrolling when focus moves to an
	// invalid field. A client reduced-motion preference overrides it.
	SmoothScroll bool
}

// Form wraps a form-state store behind an HTTP surface with accessible
// defaults: validation on blur and submit only, a novalidate form element,
// and invalid-field focus management.
//
// Forms receive a deterministic URL prefix derived from their name and
// construction site (file:line), so two forms with the same name in
// different places never collide.
type Form struct {
	name         string
	prefix       string
	sensitive    bool
	smoothScroll bool
	cfg          FormConfig
	render       func(f *FormContext) templ.Component
}

// NewForm creates a form with the given configuration and render function.
// The render function is the form's body; NewForm wraps it in the <form>
// element, the hidden state input, and the focus coordinator wiring.
func NewForm(cfg FormConfig, render func(f *FormContext) templ.Component) *Form {
	return &Form{
		name:         cfg.Name,
		prefix:       "/_f/" + cfg.Name + "-" + formHash(cfg.Name, 1),
		smoothScroll: cfg.SmoothScroll,
		cfg:          cfg,
		render:       render,
	}
}

// Sensitive switches the form's state snapshots from signed to encrypted.
// Use when form values carry user identifiers or other data that should be
// opaque to the client.
func (f *Form) Sensitive() *Form {
	f.sensitive = true
	return f
}

// Name returns the form's name.
func (f *Form) Name() string { return f.name }

// Prefix returns the form's URL prefix. The registry mounts the form's
// routes under it.
func (f *Form) Prefix() string { return f.prefix }

// ElementID returns the id of the rendered <form> element.
func (f *Form) ElementID() string { return f.name + "-form" }

// newStore builds a request-scoped store with the wrapper's validation
// overrides applied: blur and submit only, never on change.
func (f *Form) newStore(onSubmit SubmitFunc) *Store {
	return NewStore(StoreConfig{
		InitialValues:    f.cfg.InitialValues,
		Validator:        f.cfg.Validator,
		OnSubmit:         onSubmit,
		ValidateOnChange: false,
		ValidateOnBlur:   true,
	})
}

// newContext builds the render context for one request cycle.
func (f *Form) newContext(store *Store, codec *Codec) *FormContext {
	directive := &Directive{}
	return &FormContext{
		form:      f,
		store:     store,
		codec:     codec,
		directive: directive,
		Focus:     NewCoordinator(directive),
	}
}

func (f *Form) encodingMode() encoding.Mode {
	if f.sensitive {
		return encoding.Encrypted
	}
	return encoding.Signed
}

func (f *Form) decodeSnapshot(codec *Codec, encoded string) (Snapshot, error) {
	var snap Snapshot
	err := codec.Decode(encoded, f.encodingMode(), &snap)
	return snap, wrapSnapshotError(err)
}

// FormContext is the render-prop surface handed to a form's render
// function. It exposes the field accessors, the field renderers (wired to
// the focus coordinator), and the HTMX attributes for blur validation.
type FormContext struct {
	form      *Form
	store     *Store
	codec     *Codec
	directive *Directive

	// Focus coordinates invalid-field focus for this render cycle.
	Focus *Coordinator
}

// Field returns the accessor props for a named field.
func (f *FormContext) Field(name string) FieldProps {
	return f.store.Field(name)
}

// TextField renders a labeled input bound to this form's coordinator.
func (f *FormContext) TextField(props FieldProps, opts TextFieldOptions) templ.Component {
	opts.Focus = f.Focus
	return TextField(props, opts)
}

// SelectField renders a labeled select bound to this form's coordinator.
func (f *FormContext) SelectField(props FieldProps, opts SelectFieldOptions) templ.Component {
	opts.Focus = f.Focus
	return SelectField(props, opts)
}

// BlurAttrs returns HTMX attributes that re-validate the form when the
// element loses focus. Merge them into a renderer's InputAttrs or
// SelectAttrs to opt a field into on-blur validation round trips.
func (f *FormContext) BlurAttrs() templ.Attributes {
	return templ.Attributes{
		"hx-post":    f.form.prefix + "/blur",
		"hx-trigger": "blur changed",
		"hx-target":  "#" + f.form.ElementID(),
		"hx-swap":    string(SwapOuter),
		"hx-include": "closest form",
	}
}

// component wraps the render function's output in the form element. The
// element carries novalidate so the browser's native validation bubbles
// never compete with the rendered, accessible error messages.
func (f *FormContext) component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		encoded := ""
		if f.codec != nil {
			var err error
			encoded, err = f.codec.Encode(f.store.Snapshot(), f.form.encodingMode())
			if err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w,
			`<form id="`+html.EscapeString(f.form.ElementID())+`" novalidate`+
				` hx-post="`+f.form.prefix+`/submit" hx-target="this" hx-swap="`+string(SwapOuter)+`">`); err != nil {
			return err
		}
		if encoded != "" {
			if _, err := io.WriteString(w,
				`<input type="hidden" name="`+stateField+`" value="`+html.EscapeString(encoded)+`">`); err != nil {
				return err
			}
		}
		if f.form.render != nil {
			if err := f.form.render(f).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</form>`)
		return err
	})
}

// formHash derives a short deterministic hash from the form name and the
// source location of the NewForm call, so identically named forms declared
// in different places get distinct prefixes.
func formHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
