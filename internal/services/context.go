package services

import "context"

type contextKey int

const (
	jobContextKey contextKey = iota
	providerContextKey
	runContextKey
)

// WithJob stores the active job name on the context.
func WithJob(ctx context.Context, job string) context.Context {
	return context.WithValue(ctx, jobContextKey, job)
}

// JobFromContext returns the job name recorded on the context, if any.
func JobFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(jobContextKey).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// WithProvider stores the provider record identifier on the context.
func WithProvider(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, providerContextKey, id)
}

// ProviderFromContext returns the provider identifier recorded on the context, if any.
func ProviderFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(providerContextKey).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// WithRun stores the batch run token on the context.
func WithRun(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, runContextKey, token)
}

// RunFromContext returns the batch run token recorded on the context, if any.
func RunFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(runContextKey).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
