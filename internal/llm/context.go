package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the requests made with ctx so logs can tell callers
// apart, e.g. "recommendations".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeOf(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return "unlabeled"
}
