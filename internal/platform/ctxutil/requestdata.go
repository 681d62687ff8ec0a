package ctxutil

import (
	"context"

	"github.com/agoralabs/agora-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the gateway-validated actor identity for a request.
type RequestData struct {
	Actor domain.ActorRef
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
