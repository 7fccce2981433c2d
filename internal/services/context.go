package services

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	shootCodeKey contextKey = "shoot_code"
	stageKey     contextKey = "stage"
)

// WithSessionID annotates context with the review-session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the review-session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithShootCode annotates context with the shoot code being processed.
func WithShootCode(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, shootCodeKey, code)
}

// ShootCodeFromContext returns the shoot code if present.
func ShootCodeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(shootCodeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
