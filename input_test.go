package formwire

import (
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/sebdah/goldie/v2"
)

func renderTextField(t *testing.T, props FieldProps, opts TextFieldOptions) string {
	t.Helper()
	result, err := RenderComponent(TextField(props, opts))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return result.HTML
}

func TestTextFieldValidityClassPolicy(t *testing.T) {
	tests := []struct {
		name        string
		submitCount int
		errMsg      string
		wantInvalid bool
		wantValid   bool
	}{
		{"pre-submission with error shows no class", 0, "Required", false, false},
		{"pre-submission without error shows no class", 0, "", false, false},
		{"post-submission with error is invalid", 1, "Required", true, false},
		{"post-submission without error is valid", 1, "", false, true},
		{"later submissions keep the policy", 3, "Required", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := FieldProps{
				Field: Field{Name: "email"},
				Meta:  Meta{Error: tt.errMsg},
				Form:  FormMeta{SubmitCount: tt.submitCount},
			}
			html := renderTextField(t, props, TextFieldOptions{Label: "Email"})

			if got := strings.Contains(html, ClassIsInvalid); got != tt.wantInvalid {
				t.Errorf("is-invalid present = %v, want %v in %q", got, tt.wantInvalid, html)
			}
			if got := strings.Contains(html, ClassIsValid) && !strings.Contains(html, ClassIsInvalid); got != tt.wantValid {
				t.Errorf("is-valid present = %v, want %v in %q", got, tt.wantValid, html)
			}
		})
	}
}

func TestTextFieldAriaTracksErrorNotSubmitCount(t *testing.T) {
	// aria-invalid and aria-describedby follow error presence even before
	// the first submission, unlike the visual classes.
	props := FieldProps{
		Field: Field{Name: "email"},
		Meta:  Meta{Error: "Required"},
		Form:  FormMeta{SubmitCount: 0},
	}
	html := renderTextField(t, props, TextFieldOptions{Label: "Email"})

	if !strings.Contains(html, `aria-invalid="true"`) {
		t.Error("aria-invalid missing despite error")
	}
	if !strings.Contains(html, `aria-describedby="email-feedback"`) {
		t.Error("aria-describedby missing despite error")
	}

	props.Meta.Error = ""
	props.Form.SubmitCount = 2
	html = renderTextField(t, props, TextFieldOptions{Label: "Email"})

	if strings.Contains(html, "aria-invalid") {
		t.Error("aria-invalid present without error")
	}
	if strings.Contains(html, "aria-describedby") {
		t.Error("aria-describedby present without error")
	}
}

func TestTextFieldLabelAssociationAndIDOverride(t *testing.T) {
	props := FieldProps{Field: Field{Name: "email"}}

	html := renderTextField(t, props, TextFieldOptions{Label: "Email"})
	if !strings.Contains(html, `for="email"`) || !strings.Contains(html, `id="email"`) {
		t.Errorf("label/input association broken: %q", html)
	}

	html = renderTextField(t, props, TextFieldOptions{Label: "Email", ID: "signup-email"})
	if !strings.Contains(html, `for="signup-email"`) || !strings.Contains(html, `id="signup-email"`) {
		t.Errorf("id override not applied: %q", html)
	}
	if !strings.Contains(html, `id="signup-email-feedback"`) {
		t.Errorf("feedback id should derive from override: %q", html)
	}
}

func TestTextFieldAlwaysMountsFeedback(t *testing.T) {
	props := FieldProps{Field: Field{Name: "email"}}
	html := renderTextField(t, props, TextFieldOptions{Label: "Email"})

	if !strings.Contains(html, `<div class="invalid-feedback" id="email-feedback"></div>`) {
		t.Errorf("feedback container should mount even without an error: %q", html)
	}
}

func TestTextFieldCheckTypesUseCheckClasses(t *testing.T) {
	for _, inputType := range []string{"checkbox", "radio"} {
		props := FieldProps{Field: Field{Name: "accept", Value: true}}
		html := renderTextField(t, props, TextFieldOptions{Label: "Accept", Type: inputType})

		if !strings.Contains(html, ClassFormCheckInput) {
			t.Errorf("%s: missing %s: %q", inputType, ClassFormCheckInput, html)
		}
		if !strings.Contains(html, ClassFormCheckLabel) {
			t.Errorf("%s: missing %s: %q", inputType, ClassFormCheckLabel, html)
		}
		if strings.Contains(html, ClassFormControl) {
			t.Errorf("%s: form-control leaked into check rendering: %q", inputType, html)
		}
		if !strings.Contains(html, `value="true"`) {
			t.Errorf("%s: check types should post a constant value: %q", inputType, html)
		}
		if !strings.Contains(html, " checked") {
			t.Errorf("%s: true value should render checked: %q", inputType, html)
		}
	}
}

func TestTextFieldCheckedStateFromValue(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		checked bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"posted constant", "true", true},
		{"html default wire value", "on", true},
		{"posted false string", "false", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := FieldProps{Field: Field{Name: "accept", Value: tt.value}}
			html := renderTextField(t, props, TextFieldOptions{Label: "Accept", Type: "checkbox"})

			if got := strings.Contains(html, " checked"); got != tt.checked {
				t.Errorf("checked = %v, want %v in %q", got, tt.checked, html)
			}
		})
	}
}

func TestTextFieldReservedAttrKeysDropped(t *testing.T) {
	props := FieldProps{Field: Field{Name: "email"}}
	html := renderTextField(t, props, TextFieldOptions{
		Label:      "Email",
		LabelAttrs: templ.Attributes{"id": "rogue-label", "data-hint": "1"},
		InputAttrs: templ.Attributes{"id": "rogue-input", "type": "hidden", "data-role": "main"},
	})

	if strings.Contains(html, "rogue-label") || strings.Contains(html, "rogue-input") {
		t.Errorf("reserved id keys produced duplicate attributes: %q", html)
	}
	if strings.Contains(html, `type="hidden"`) {
		t.Errorf("reserved type key overrode the renderer: %q", html)
	}
	if !strings.Contains(html, `data-hint="1"`) || !strings.Contains(html, `data-role="main"`) {
		t.Errorf("non-reserved attrs should survive filtering: %q", html)
	}
	if strings.Count(html, `id="email"`) != 1 || strings.Count(html, `id="email-label"`) != 1 {
		t.Errorf("element ids should appear exactly once: %q", html)
	}
}

func TestTextFieldNilValueRendersEmpty(t *testing.T) {
	props := FieldProps{Field: Field{Name: "email", Value: nil}}
	html := renderTextField(t, props, TextFieldOptions{Label: "Email"})

	if !strings.Contains(html, `value=""`) {
		t.Errorf("nil value should render as empty string: %q", html)
	}
}

func TestTextFieldExtraAttrsSortedAndEscaped(t *testing.T) {
	props := FieldProps{Field: Field{Name: "email"}}
	html := renderTextField(t, props, TextFieldOptions{
		Label: "Email",
		InputAttrs: templ.Attributes{
			"placeholder":  `you@"example"`,
			"autocomplete": "email",
			"required":     true,
			"hidden":       false,
		},
	})

	auto := strings.Index(html, "autocomplete")
	placeholder := strings.Index(html, "placeholder")
	if auto == -1 || placeholder == -1 || auto > placeholder {
		t.Errorf("extra attrs missing or unsorted: %q", html)
	}
	if !strings.Contains(html, `placeholder="you@&#34;example&#34;"`) {
		t.Errorf("attr value not escaped: %q", html)
	}
	if !strings.Contains(html, " required") {
		t.Errorf("true boolean attr should render bare: %q", html)
	}
	if strings.Contains(html, "hidden") {
		t.Errorf("false boolean attr should be dropped: %q", html)
	}
}

func TestTextFieldRegistersFocusSlots(t *testing.T) {
	fs := &fakeScroller{}
	co := NewCoordinator(fs)
	props := FieldProps{
		Field: Field{Name: "email"},
		Meta:  Meta{Error: "Required"},
		Form:  FormMeta{SubmitCount: 1},
	}
	renderTextField(t, props, TextFieldOptions{Label: "Email", Focus: co})

	completedSubmission(co, "email", false, false)

	if len(fs.calls) != 1 {
		t.Fatalf("focus calls = %d, want 1", len(fs.calls))
	}
	if fs.calls[0].target != "#email" {
		t.Errorf("target = %q, want #email", fs.calls[0].target)
	}
	if fs.calls[0].container != "#email-label" {
		t.Errorf("container = %q, want #email-label", fs.calls[0].container)
	}
}

func TestTextFieldGoldenInvalid(t *testing.T) {
	props := FieldProps{
		Field: Field{Name: "email", Value: "ada@example.org"},
		Meta:  Meta{Error: "Required"},
		Form:  FormMeta{SubmitCount: 1},
	}
	html := renderTextField(t, props, TextFieldOptions{Label: "Email address"})

	g := goldie.New(t)
	g.Assert(t, "textfield_invalid", []byte(html))
}
