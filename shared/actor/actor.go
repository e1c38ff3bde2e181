// Package actor describes the authenticated caller of a request.
package actor

import (
	"cleanbook/shared/constant"
	"context"
)

// Actor is the identity resolved from the request credentials.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

// FromContext reads the identity placed on the context by the auth middleware.
func FromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{
		ID:    id,
		Email: email,
		Role:  role,
	}
}

// WithActor stores the identity using the same keys the auth middleware writes.
func WithActor(ctx context.Context, a Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, a.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, a.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, a.Role)
}
