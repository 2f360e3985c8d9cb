package utils

import "context"

type contextKey string

const (
	SubjectKey     contextKey = "subject_email"
	SubjectSlotKey contextKey = "subject_slot"
	RequestKey     contextKey = "request_id"
)

type subjectSlot struct {
	email string
}

// WithSubjectSlot lets middleware running before authentication read the
// subject once the request has been served.
func WithSubjectSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, SubjectSlotKey, &subjectSlot{})
}

func GetSubjectFromSlot(ctx context.Context) (string, bool) {
	slot, ok := ctx.Value(SubjectSlotKey).(*subjectSlot)
	if !ok || slot.email == "" {
		return "", false
	}
	return slot.email, true
}

// SetSubjectContext stores the verified identity email of the caller.
func SetSubjectContext(ctx context.Context, email string) context.Context {
	if slot, ok := ctx.Value(SubjectSlotKey).(*subjectSlot); ok {
		slot.email = email
	}
	return context.WithValue(ctx, SubjectKey, email)
}

func GetSubjectFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(SubjectKey).(string)
	return email, ok && email != ""
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestKey, id)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestKey).(string)
	return id
}
