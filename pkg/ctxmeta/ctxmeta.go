// Пакет ctxmeta — нейтральный слой для метаданных запроса в context.Context
// (request_id, операция корзины, trace/span).
// HTTP-слой, консьюмер и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyOperation ctxKey = "cart_op"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithOperation помечает контекст операцией корзины (add/remove/update).
func WithOperation(ctx context.Context, op string) context.Context {
	return withString(ctx, KeyOperation, op)
}

// OperationFromContext достаёт операцию корзины.
func OperationFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyOperation)
}

// Fields — пары ключ/значение для структурного логгера; пустые значения пропускаются.
func Fields(ctx context.Context) []any {
	var fields []any
	if v, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, string(KeyRequestID), v)
	}
	if v, ok := OperationFromContext(ctx); ok {
		fields = append(fields, string(KeyOperation), v)
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", v)
	}
	if v, ok := SpanIDFromContext(ctx); ok {
		fields = append(fields, "span_id", v)
	}
	return fields
}

func withString(ctx context.Context, key ctxKey, value string) context.Context {
	if ctx == nil || value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
