package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the context so the audit log can attribute the
// request to a call site (question-gen, hint, diagnosis).
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the purpose label, "unknown" when the caller never
// set one.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return "unknown"
}
