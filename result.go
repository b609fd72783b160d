package formwire

// Result is returned from form submit handlers to describe what should
// happen after a successful submission: flash messages, a client-side
// redirect, broadcast events, extra headers.
//
// Validation failures never travel through Result — they live in the
// store's error set and are rendered inline by the field components.
//
//	return formwire.OK().Flash(formwire.FlashSuccess, "Saved!")
//	return formwire.Redirect("/dashboard")
type Result struct {
	err         error
	redirect    string
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	headers     map[string]string
	status      int
}

// OK creates a success result; the form re-renders with its updated state.
func OK() Result {
	return Result{}
}

// Err creates a failure result; the registry's OnError callback decides
// the response. Use for domain failures, not validation errors.
func Err(err error) Result {
	return Result{err: err}
}

// Redirect creates a result that redirects via the HX-Redirect header,
// which HTMX turns into a client-side navigation.
func Redirect(url string) Result {
	return Result{redirect: url}
}

// Flash appends a toast notification, rendered as an out-of-band swap.
func (r Result) Flash(level, message string) Result {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits an event via the HX-Trigger header so unrelated components
// can react to the submission.
func (r Result) Trigger(event string, data ...map[string]any) Result {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// Header sets a custom response header.
func (r Result) Header(key, value string) Result {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Status sets the HTTP status code; 0 means the default 200.
func (r Result) Status(code int) Result {
	r.status = code
	return r
}

// GetErr returns the handler error, if any.
func (r Result) GetErr() error { return r.err }

// GetRedirect returns the redirect URL, if any.
func (r Result) GetRedirect() string { return r.redirect }

// GetFlashes returns the flash messages.
func (r Result) GetFlashes() []Flash { return r.flashes }

// GetTrigger returns the broadcast event name.
func (r Result) GetTrigger() string { return r.trigger }

// GetTriggerData returns the broadcast event data.
func (r Result) GetTriggerData() map[string]any { return r.triggerData }

// GetHeaders returns the custom response headers.
func (r Result) GetHeaders() map[string]string { return r.headers }

// GetStatus returns the HTTP status code (0 means not set).
func (r Result) GetStatus() int { return r.status }
