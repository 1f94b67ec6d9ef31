package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey requestDataKeyType

// RequestData carries the authenticated caller through a request context.
// UserID is the canonical internal id; it stays 0 when the identity provider
// vouched for the token but no profile row could be resolved (guest path).
type RequestData struct {
	TokenString string
	AuthUUID    uuid.UUID
	Email       string
	UserID      int64
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
