package service

import (
	"context"
	"errors"
	"strings"

	"github.com/caremesh/hospital-api/internal/domain"
)

var (
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type actorKey struct{}

// WithActor attaches the authenticated caller to the request context so
// services can stamp audit entries without threading identity through every
// signature.
func WithActor(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, actorKey{}, claims)
}

// ActorFrom returns the authenticated caller, or nil when the request came in
// without a token.
func ActorFrom(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(actorKey{}).(*domain.Claims)
	return claims
}

type AuditEntry struct {
	Username     string
	UserRole     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
}

func auditEntry(ctx context.Context, action, resourceType, resourceID string) AuditEntry {
	entry := AuditEntry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if actor := ActorFrom(ctx); actor != nil {
		entry.Username = actor.Username
		entry.UserRole = string(actor.Role)
	}
	return entry
}
