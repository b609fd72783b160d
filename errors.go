package formwire

import "errors"

// Sentinel errors for form operations.
var (
	ErrFormNotFound     = errors.New("formwire: form not found")
	ErrInvalidFormat    = errors.New("formwire: invalid snapshot format")
	ErrSignatureInvalid = errors.New("formwire: snapshot signature verification failed")
	ErrDecryptFailed    = errors.New("formwire: snapshot decryption failed")
)

// IsSnapshotError checks if err stems from an unreadable or tampered
// state snapshot. Handlers typically answer these with 400 rather than 500.
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}
