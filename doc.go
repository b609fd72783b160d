// Package formwire provides accessible, server-rendered form components for
// Go, Templ, and HTMX applications.
//
// formwire binds form field state (value, validity, touched/submitted
// status) to rendered HTML while enforcing the accessibility contracts that
// are easy to get wrong by hand: label/input id association, aria-invalid
// and aria-describedby wiring, and keyboard focus management for invalid
// fields after a failed submission.
//
// # Core Concepts
//
// A Form pairs a validator, a submit handler, and a render function. Each
// request gets a fresh Store holding the form's values, ordered error set,
// touched fields, and submission counters. Field renderers are pure: they
// read FieldProps from the store and emit HTML with correct accessibility
// attributes.
//
//	form := formwire.NewForm(formwire.FormConfig{
//	    Name:          "signup",
//	    InitialValues: formwire.Values{"email": ""},
//	    Validator:     formwire.ValidatorFunc(validate),
//	    OnSubmit:      handleSignup,
//	}, renderSignup)
//
// The render function receives a FormContext exposing field accessors and
// the field renderers:
//
//	func renderSignup(f *formwire.FormContext) templ.Component {
//	    return f.TextField(f.Field("email"), formwire.TextFieldOptions{Label: "Email"})
//	}
//
// # Validity Display Policy
//
// Before the form's first submission attempt no valid/invalid class is
// applied, regardless of error state, to avoid premature red/green
// signaling. After the first submission an "is-invalid" class is applied
// when the field has an error, "is-valid" otherwise. aria-invalid reflects
// error presence unconditionally, per assistive-technology guidance.
//
// # Invalid-Field Focus
//
// After a submission completes with errors, the first field in error (by
// insertion order of validation failures) receives keyboard focus and its
// label is scrolled into view. The Coordinator implements this as an
// explicit state machine over injected previous-tick values, so the
// temporal contract is unit-testable without a rendering harness. Acting
// on the submitting flag's falling edge, rather than its rising edge,
// prevents stealing focus toward a field that passed validation while the
// submission was in flight.
//
// Over HTTP the focus move is delivered as an HX-Trigger-After-Settle
// event ("formwire:focus") so it runs only after the swapped content has
// settled. A reduced-motion preference (Sec-CH-Prefers-Reduced-Motion)
// forces instant scrolling.
//
// # Validation Timing
//
// The form wrapper disables validate-on-change: validation runs on blur
// and on submit only, and the rendered <form> carries novalidate so the
// custom accessible validation fully controls the experience.
//
// # State Round-Tripping
//
// The server keeps no session state. Store snapshots travel through a
// hidden input, msgpack-encoded and either HMAC-signed (default, visible
// but tamper-proof) or AES-GCM encrypted (opaque, via Sensitive).
//
// # Registration and Routing
//
// Forms are registered explicitly with a Registry:
//
//	reg := formwire.NewRegistry(secretKey, formwire.WithLogger(logger))
//	reg.Add(signup, settings)
//	http.Handle("/_f/", reg.Handler())
//
// The registry rejects mutating requests that lack the HX-Request header
// (CSRF), routes each form under its hashed prefix, and funnels failures
// through a single OnError callback.
package formwire
