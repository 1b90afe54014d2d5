package utils

import "context"

type contextKey string

var (
	ContextKeyUserId        contextKey = "user_id"
	ContextKeyUserName      contextKey = "user_name"
	ContextKeyCorrelationId contextKey = "correlation_id"
)

func getString(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func getInt(ctx context.Context, key contextKey) (int, bool) {
	v, ok := ctx.Value(key).(int)
	return v, ok
}

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	return getInt(ctx, ContextKeyUserId)
}

func GetUserNameFromContext(ctx context.Context) (string, bool) {
	return getString(ctx, ContextKeyUserName)
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return context.WithValue(ctx, ContextKeyUserId, userId)
}

func SetUserNameInContext(ctx context.Context, userName string) context.Context {
	return context.WithValue(ctx, ContextKeyUserName, userName)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return getString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationId, correlationId)
}
