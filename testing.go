package formwire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds the output of rendering or submitting a form under
// test, with convenience methods for asserting on HTML content, headers,
// triggered events, and flashes.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
	RedirectURL     string
}

// RenderComponent renders any templ component to a TestResult. Use for
// pure rendering tests of field components, where props are constructed
// directly and no HTTP mechanics are involved.
func RenderComponent(comp templ.Component) (*TestResult, error) {
	var buf bytes.Buffer
	if err := comp.Render(context.Background(), &buf); err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// RenderForm performs the initial GET render of a registered form through
// the registry's handler.
func RenderForm(reg *Registry, form *Form) (*TestResult, error) {
	req := httptest.NewRequest(http.MethodGet, form.Prefix()+"/", nil)
	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)
	return recordedResult(rec), nil
}

// SubmitForm simulates a full submission round trip: it encodes a fresh
// state snapshot (as the hidden input would carry), posts it with the
// given field values and HTMX headers, and parses the response.
//
// Extra request headers (e.g. Sec-CH-Prefers-Reduced-Motion) go in hdrs.
func SubmitForm(reg *Registry, form *Form, values map[string]string, hdrs ...http.Header) (*TestResult, error) {
	return postForm(reg, form, "submit", values, hdrs...)
}

// BlurField simulates an on-blur validation round trip for one field.
func BlurField(reg *Registry, form *Form, field string, values map[string]string, hdrs ...http.Header) (*TestResult, error) {
	if values == nil {
		values = map[string]string{}
	}
	values["_blur"] = field
	return postForm(reg, form, "blur", values, hdrs...)
}

func postForm(reg *Registry, form *Form, action string, values map[string]string, hdrs ...http.Header) (*TestResult, error) {
	encoded, err := reg.codec.Encode(form.newStore(nil).Snapshot(), form.encodingMode())
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	data.Set(stateField, encoded)
	for k, v := range values {
		data.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, form.Prefix()+"/"+action, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	for _, h := range hdrs {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)
	return recordedResult(rec), nil
}

func recordedResult(rec *httptest.ResponseRecorder) *TestResult {
	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	for _, header := range []string{"HX-Trigger", "HX-Trigger-After-Settle"} {
		if trigger := rec.Header().Get(header); trigger != "" {
			result.TriggeredEvents = append(result.TriggeredEvents, parseTriggerHeader(trigger)...)
		}
	}
	result.RedirectURL = rec.Header().Get("HX-Redirect")
	result.Flashes = parseFlashesFromHTML(result.HTML)
	return result
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered (on either trigger header).
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash checks if a flash with the given level and message was set.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// WasRedirected checks if the response carried an HX-Redirect.
func (r *TestResult) WasRedirected() bool {
	return r.RedirectURL != ""
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns the value of a response header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// parseTriggerHeader extracts event names from an HX-Trigger header value:
// either a comma-separated list of names or a JSON object keyed by event.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &payload); err != nil {
			return nil
		}
		events := make([]string, 0, len(payload))
		for event := range payload {
			events = append(events, event)
		}
		return events
	}

	parts := strings.Split(trigger, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// parseFlashesFromHTML extracts flash messages from OOB toast markup.
func parseFlashesFromHTML(html string) []Flash {
	var flashes []Flash

	const prefix = `<div class="toast toast-`
	idx := 0
	for {
		start := strings.Index(html[idx:], prefix)
		if start == -1 {
			break
		}
		start += idx + len(prefix)

		levelEnd := strings.Index(html[start:], `"`)
		if levelEnd == -1 {
			break
		}
		level := html[start : start+levelEnd]

		tagEnd := strings.Index(html[start:], ">")
		if tagEnd == -1 {
			break
		}
		contentStart := start + tagEnd + 1

		contentEnd := strings.Index(html[contentStart:], "</div>")
		if contentEnd == -1 {
			break
		}

		flashes = append(flashes, Flash{
			Level:   level,
			Message: html[contentStart : contentStart+contentEnd],
		})
		idx = contentStart + contentEnd
	}
	return flashes
}
