package formwire

import (
	"errors"

	"github.com/formwire/formwire/lib/encoding"
)

// Codec is an alias for encoding.Codec for convenience.
type Codec = encoding.Codec

// NewCodec creates a snapshot codec from the given secret key.
func NewCodec(secret []byte) (*Codec, error) {
	return encoding.NewCodec(secret)
}

// wrapSnapshotError maps encoding package errors onto formwire sentinels.
func wrapSnapshotError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
