package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/formwire/formwire"
)

//go:embed static
var staticFiles embed.FS

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// In production, use a real secret.
	key := []byte("example-key-must-be-32-bytes!!!!")
	reg := formwire.NewRegistry(key, formwire.WithLogger(logger))

	signup := newSignupForm()
	reg.Add(signup)

	mux := http.NewServeMux()
	mux.Handle("/_f/", reg.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		formwire.Render(w, r, Layout(reg.Component(signup)))
	})

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	addr := ":8080"
	fmt.Printf("Starting server at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

var countries = []formwire.OptionNode{
	formwire.Option{Value: "", Label: "Choose…", Disabled: true},
	formwire.OptionGroup{Label: "Nordics", Options: []formwire.OptionNode{
		formwire.Option{Value: "se", Label: "Sweden"},
		formwire.Option{Value: "no", Label: "Norway"},
		formwire.Option{Value: "dk", Label: "Denmark"},
	}},
	formwire.OptionGroup{Label: "Benelux", Options: []formwire.OptionNode{
		formwire.Option{Value: "nl", Label: "Netherlands"},
		formwire.Option{Value: "be", Label: "Belgium"},
	}},
	formwire.Option{Value: "other", Label: "Other"},
}

func newSignupForm() *formwire.Form {
	return formwire.NewForm(formwire.FormConfig{
		Name: "signup",
		InitialValues: formwire.Values{
			"email":   "",
			"name":    "",
			"country": "",
		},
		Validator:    formwire.ValidatorFunc(validateSignup),
		SmoothScroll: true,
		OnSubmit: func(ctx context.Context, values formwire.Values) formwire.Result {
			return formwire.OK().Flash(formwire.FlashSuccess, "Welcome aboard!")
		},
	}, func(f *formwire.FormContext) templ.Component {
		return templ.Join(
			f.TextField(f.Field("email"), formwire.TextFieldOptions{
				Label:      "Email address",
				Type:       "email",
				InputAttrs: f.BlurAttrs(),
			}),
			f.TextField(f.Field("name"), formwire.TextFieldOptions{
				Label:      "Full name",
				InputAttrs: f.BlurAttrs(),
			}),
			f.SelectField(f.Field("country"), formwire.SelectFieldOptions{
				Label:         "Country",
				Options:       countries,
				FloatingLabel: true,
			}),
			submitButton(),
		)
	})
}

func validateSignup(values formwire.Values) *formwire.Errors {
	errs := &formwire.Errors{}
	if v, _ := values["email"].(string); v == "" {
		errs.Set("email", "Email address is required")
	}
	if v, _ := values["name"].(string); v == "" {
		errs.Set("name", "Full name is required")
	}
	if v, _ := values["country"].(string); v == "" {
		errs.Set("country", "Select a country")
	}
	return errs
}
