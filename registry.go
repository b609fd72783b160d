package formwire

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// Registry manages form registration and routing.
//
// Forms are registered explicitly; the registry mounts each one under its
// hashed prefix, shares one snapshot codec across them, and funnels
// failures through a single OnError callback.
type Registry struct {
	mu     sync.RWMutex
	mux    *http.ServeMux
	codec  *Codec
	logger *zap.Logger
	forms  map[string]*Form

	// OnError is called when a form request fails outside of validation:
	// unreadable snapshots, render errors, submit handler errors.
	// Customize it to match the application's error pages.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry's structured logger. The default is a nop
// logger.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.logger = logger
	}
}

// NewRegistry creates a form registry with the given snapshot secret key.
func NewRegistry(secret []byte, opts ...RegistryOption) *Registry {
	codec, err := NewCodec(secret)
	if err != nil {
		panic(fmt.Sprintf("formwire: failed to create snapshot codec: %v", err))
	}

	reg := &Registry{
		mux:    http.NewServeMux(),
		codec:  codec,
		logger: zap.NewNop(),
		forms:  make(map[string]*Form),
	}
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsSnapshotError(err) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
	return reg
}

// Add registers forms with the registry. Panics on a prefix collision;
// colliding prefixes are a programming error, not a runtime condition.
func (reg *Registry) Add(forms ...*Form) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, form := range forms {
		if _, exists := reg.forms[form.prefix]; exists {
			panic(fmt.Sprintf("formwire: prefix collision for %q", form.prefix))
		}
		reg.forms[form.prefix] = form

		f := form
		reg.mux.HandleFunc(f.prefix+"/", func(w http.ResponseWriter, r *http.Request) {
			reg.serveForm(f, w, r)
		})
		reg.logger.Debug("form registered",
			zap.String("form", form.name),
			zap.String("prefix", form.prefix))
	}
}

// Form returns the registered form with the given name, or ErrFormNotFound.
func (reg *Registry) Form(name string) (*Form, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for _, f := range reg.forms {
		if f.name == name {
			return f, nil
		}
	}
	return nil, ErrFormNotFound
}

// Component returns the initial render of a registered form, for embedding
// into a page layout. The registry supplies the codec that encodes the
// hidden state input.
func (reg *Registry) Component(form *Form) templ.Component {
	fctx := form.newContext(form.newStore(nil), reg.codec)
	return fctx.component()
}

// Handler returns the HTTP handler for form routes. Mount it at "/_f/".
//
// Mutating methods require the HX-Request header that HTMX sends with
// every request, which blocks plain cross-origin form posts without
// additional tokens.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}
		reg.mux.ServeHTTP(w, r)
	})
}
