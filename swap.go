package formwire

// SwapMode is an HTMX hx-swap strategy. Form responses replace the whole
// form element, so SwapOuter is the default everywhere.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents.
	SwapInner SwapMode = "innerHTML"

	// SwapNone discards the response; useful for fire-and-forget actions.
	SwapNone SwapMode = "none"
)
