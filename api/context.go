package api

import (
	"context"
)

type keyType string

const adminSubjectKey keyType = "adminSubject"

// ctxWithAdminSubject records the authenticated admin identity
func ctxWithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// ctxAdminSubject retrieves the authenticated admin identity, if any
func ctxAdminSubject(ctx context.Context) string {
	if v, ok := ctx.Value(adminSubjectKey).(string); ok {
		return v
	}
	return ""
}
