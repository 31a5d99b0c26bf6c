package session

import "context"

type (
	sessionContextKey       struct{}
	collaboratorsContextKey struct{}
)

// Collaborators are the shared store, encoder and generator the Middleware
// was built with, exposed to downstream handlers.
type Collaborators struct {
	Store     Store
	Encoder   TokenEncoder
	Generator TokenGenerator
}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return session
}

// IDFromContext retrieves the session id from the context
func IDFromContext(ctx context.Context) (string, bool) {
	session, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return session.ID, true
}

// WithCollaborators adds the session collaborators to the context
func WithCollaborators(ctx context.Context, c Collaborators) context.Context {
	return context.WithValue(ctx, collaboratorsContextKey{}, c)
}

// CollaboratorsFromContext retrieves the session collaborators from the context
func CollaboratorsFromContext(ctx context.Context) (Collaborators, bool) {
	c, ok := ctx.Value(collaboratorsContextKey{}).(Collaborators)
	return c, ok
}
