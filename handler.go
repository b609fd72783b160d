package formwire

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// serveForm routes one form's requests: GET renders, POST /blur runs
// on-blur validation, POST /submit runs a full submission attempt.
func (reg *Registry) serveForm(f *Form, w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, f.prefix+"/")
	switch {
	case r.Method == http.MethodGet && action == "":
		reg.handleRender(f, w, r)
	case r.Method == http.MethodPost && action == "blur":
		reg.handleBlur(f, w, r)
	case r.Method == http.MethodPost && action == "submit":
		reg.handleSubmit(f, w, r)
	default:
		http.NotFound(w, r)
	}
}

func (reg *Registry) handleRender(f *Form, w http.ResponseWriter, r *http.Request) {
	fctx := f.newContext(f.newStore(nil), reg.codec)
	if err := Render(w, r, fctx.component()); err != nil {
		reg.logger.Error("form render failed", zap.String("form", f.name), zap.Error(err))
	}
}

func (reg *Registry) handleBlur(f *Form, w http.ResponseWriter, r *http.Request) {
	store, err := reg.restoreStore(f, nil, r)
	if err != nil {
		reg.fail(f, w, r, err)
		return
	}

	name := TriggerName(r)
	if name == "" {
		name = r.PostFormValue("_blur")
	}
	if name != "" {
		store.Blur(name)
	}

	fctx := f.newContext(store, reg.codec)
	if err := Render(w, r, fctx.component()); err != nil {
		reg.logger.Error("form render failed", zap.String("form", f.name), zap.Error(err))
	}
}

func (reg *Registry) handleSubmit(f *Form, w http.ResponseWriter, r *http.Request) {
	// The submit handler's Result is captured here; the store only sees an
	// error-returning SubmitFunc.
	res := OK()
	onSubmit := func(ctx context.Context, values Values) error {
		if f.cfg.OnSubmit == nil {
			return nil
		}
		res = f.cfg.OnSubmit(ctx, values)
		return res.GetErr()
	}

	store, err := reg.restoreStore(f, onSubmit, r)
	if err != nil {
		reg.fail(f, w, r, err)
		return
	}

	if err := store.Submit(r.Context()); err != nil {
		reg.logger.Error("submit handler failed", zap.String("form", f.name), zap.Error(err))
		reg.fail(f, w, r, err)
		return
	}

	meta := store.Meta()
	reg.logger.Debug("submission processed",
		zap.String("form", f.name),
		zap.Int("submit_count", meta.SubmitCount),
		zap.Int("errors", meta.Errors.Len()))

	if url := res.GetRedirect(); url != "" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}

	// Render first: field renderers fill the coordinator's element slots,
	// and the focus decision needs those slots populated.
	fctx := f.newContext(store, reg.codec)
	var buf bytes.Buffer
	if err := fctx.component().Render(r.Context(), &buf); err != nil {
		reg.fail(f, w, r, err)
		return
	}

	// Drive the watcher through the submission edge: one tick while the
	// submission was in flight, one for its completion.
	fctx.Focus.Observe(Tick{PrevSubmitting: false, Submitting: true})
	fctx.Focus.Observe(Tick{
		PrevSubmitting: true,
		Submitting:     false,
		FirstError:     meta.Errors.First(),
		SmoothScroll:   f.smoothScroll,
		ReducedMotion:  PrefersReducedMotion(r),
	})

	if intent, ok := fctx.directive.Pending(); ok {
		// After-settle so the swapped-in field exists before focus moves.
		w.Header().Set("HX-Trigger-After-Settle", buildTriggerHeader(FocusEvent, intent.TriggerData()))
	}
	if event := res.GetTrigger(); event != "" {
		w.Header().Set("HX-Trigger", buildTriggerHeader(event, res.GetTriggerData()))
	}
	for k, v := range res.GetHeaders() {
		w.Header().Set(k, v)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if code := res.GetStatus(); code != 0 {
		w.WriteHeader(code)
	}
	_, _ = w.Write(buf.Bytes())
	_, _ = w.Write([]byte(renderFlashesOOB(res.GetFlashes())))
}

// restoreStore rebuilds the request's store: decode the snapshot from the
// hidden state input, rehydrate, then apply the posted field values.
// Only fields named in the form's initial values are accepted.
func (reg *Registry) restoreStore(f *Form, onSubmit SubmitFunc, r *http.Request) (*Store, error) {
	if err := r.ParseForm(); err != nil {
		return nil, ErrInvalidFormat
	}

	store := f.newStore(onSubmit)
	encoded := r.PostFormValue(stateField)
	if encoded == "" {
		return nil, ErrInvalidFormat
	}
	snap, err := f.decodeSnapshot(reg.codec, encoded)
	if err != nil {
		return nil, err
	}
	store.Restore(snap)

	for name, initial := range f.cfg.InitialValues {
		if _, isBool := initial.(bool); isBool {
			// Check-type fields stay typed: an unchecked box is absent
			// from the post body, a checked one posts its constant value.
			store.SetValue(name, r.PostForm.Has(name) && isChecked(r.PostForm.Get(name)))
			continue
		}
		if r.PostForm.Has(name) {
			store.SetValue(name, r.PostForm.Get(name))
		}
	}
	return store, nil
}

func (reg *Registry) fail(f *Form, w http.ResponseWriter, r *http.Request, err error) {
	reg.logger.Warn("form request failed",
		zap.String("form", f.name),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	reg.OnError(w, r, err)
}

// FocusEvent is the client event carrying a focus directive. The formwire
// JavaScript runtime listens for it and calls
// focusAndScrollIntoViewIfRequired with the event detail.
const FocusEvent = "formwire:focus"
