package formwire

import (
	"encoding/json"
	"html"
	"net/http"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response with the right
// content type. Form handlers call this internally; it is exported for
// rendering surrounding pages.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether the request originated from HTMX. HTMX sends
// HX-Request: true on all requests; the registry relies on this header for
// CSRF protection of mutating methods.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// TriggerName returns the name attribute of the element that triggered the
// request. Useful when a form has several submit buttons.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// PrefersReducedMotion reports whether the client asked for reduced motion
// via the Sec-CH-Prefers-Reduced-Motion client hint. When true, focus moves
// scroll instantly instead of smoothly.
func PrefersReducedMotion(r *http.Request) bool {
	return r.Header.Get("Sec-CH-Prefers-Reduced-Motion") == "reduce"
}

// buildTriggerHeader formats an HX-Trigger(-After-Settle) header value.
// A bare event name stays plain; event data switches to the JSON form,
// which HTMX delivers as evt.detail.
func buildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	payload, err := json.Marshal(map[string]any{event: data})
	if err != nil {
		return event
	}
	return string(payload)
}

// appendAttrs appends extra user-supplied attributes in deterministic
// (sorted) order. Value kinds follow templ's own attribute rendering:
// string and *string render as key="value"; bool, *bool, and func() bool
// render as bare keys when true; KeyValue[string, bool] renders its string
// value when the condition holds; KeyValue[bool, bool] renders a bare key
// when both hold. Other kinds are dropped.
func appendAttrs(sb *strings.Builder, attrs templ.Attributes) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			writeAttr(sb, k, v)
		case *string:
			if v != nil {
				writeAttr(sb, k, *v)
			}
		case bool:
			if v {
				writeBareAttr(sb, k)
			}
		case *bool:
			if v != nil && *v {
				writeBareAttr(sb, k)
			}
		case func() bool:
			if v() {
				writeBareAttr(sb, k)
			}
		case templ.KeyValue[string, bool]:
			if v.Value {
				writeAttr(sb, k, v.Key)
			}
		case templ.KeyValue[bool, bool]:
			if v.Value && v.Key {
				writeBareAttr(sb, k)
			}
		}
	}
}

func writeAttr(sb *strings.Builder, k, v string) {
	sb.WriteString(` ` + html.EscapeString(k) + `="` + html.EscapeString(v) + `"`)
}

func writeBareAttr(sb *strings.Builder, k string) {
	sb.WriteString(` ` + html.EscapeString(k))
}

// appendAttrsExcept appends attrs while dropping reserved keys the renderer
// already emitted, so user attributes can never duplicate them.
func appendAttrsExcept(sb *strings.Builder, attrs templ.Attributes, reserved ...string) {
	if len(attrs) == 0 {
		return
	}
	filtered := make(templ.Attributes, len(attrs))
outer:
	for k, v := range attrs {
		for _, r := range reserved {
			if k == r {
				continue outer
			}
		}
		filtered[k] = v
	}
	appendAttrs(sb, filtered)
}
