package main

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/formwire/formwire"
)

// Layout wraps page content in the HTML shell: Bootstrap for the form
// classes, HTMX for the round trips, and the formwire runtime for focus
// management.
func Layout(content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sign up</title>
<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" rel="stylesheet">
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<script src="/static/formwire.js" defer></script>
</head>
<body>
<main class="container py-5" style="max-width: 28rem">
<h1 class="mb-4">Sign up</h1>
`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if err := formwire.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
</main>
</body>
</html>`)
		return err
	})
}

func submitButton() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<button type="submit" class="btn btn-primary mt-3">Create account</button>`)
		return err
	})
}
