// Package requestid carries the per-request correlation ID through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID is read from and echoed in.
const Header = "X-Request-ID"

const maxLength = 128

type ctxKey struct{}

// Resolve returns incoming when it is a usable client-supplied ID and a fresh
// UUID otherwise. Usable means non-empty, at most 128 bytes, printable ASCII.
func Resolve(incoming string) string {
	if incoming == "" || len(incoming) > maxLength {
		return uuid.NewString()
	}
	for i := 0; i < len(incoming); i++ {
		if incoming[i] < 0x21 || incoming[i] > 0x7e {
			return uuid.NewString()
		}
	}
	return incoming
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns "" when no ID is attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
