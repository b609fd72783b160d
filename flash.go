package formwire

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels for toast notifications.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// toastContainerID is the element OOB flash swaps append to.
const toastContainerID = "fw-toasts"

// Flash is a one-time notification shown after a submission. Flashes are
// rendered as out-of-band swaps appended to the toast container, so they
// survive whatever the main swap replaces.
type Flash struct {
	Level   string
	Message string
}

// renderFlashesOOB renders flashes as OOB swap HTML appended after a form
// response body.
func renderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div id="` + toastContainerID + `" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		sb.WriteString(`<div class="toast toast-` + html.EscapeString(f.Level) + `" data-auto-dismiss="3000">`)
		sb.WriteString(html.EscapeString(f.Message))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer returns the toast container component. Place it once in
// the page layout, typically near the end of <body>; flash OOB swaps
// target it by id.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+toastContainerID+`" class="toast-container"></div>`)
		return err
	})
}
