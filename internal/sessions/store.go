package sessions

import "context"

// Store persists conversation sessions keyed by sender identity. Expired or
// missing sessions come back as fresh welcome-state sessions; callers cannot
// tell the difference and should not need to.
type Store interface {
	GetOrCreate(ctx context.Context, identity string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, identity string) error
}
