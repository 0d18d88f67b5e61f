// Package chat resolves direct-conversation identity and stores messages.
package chat

import (
	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	apperrors "github.com/KadenLi6741/Localys-sub000/internal/errors"
)

// Key is the canonical, order-independent identity of a direct conversation:
// the bytewise-smaller participant always occupies A. Storage compares the
// same way (the participant columns are COLLATE "C").
type Key struct {
	A string
	B string
}

// NewKey canonicalizes an unordered participant pair. It rejects empty
// identifiers and self-pairs; for any valid pair, NewKey(a, b) == NewKey(b, a).
func NewKey(a, b string) (Key, error) {
	if a == "" || b == "" {
		return Key{}, apperrors.ValidationError("participant identifiers must not be empty")
	}
	if a == b {
		return Key{}, domain.ErrSelfConversation
	}
	if b < a {
		a, b = b, a
	}
	return Key{A: a, B: b}, nil
}

// String renders the key for use as a singleflight/dedup token.
func (k Key) String() string {
	return k.A + "|" + k.B
}
