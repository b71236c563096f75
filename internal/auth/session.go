package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Session is a signed-in administrator.
type Session struct {
	Token     string
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// SessionEvent is delivered to observers on sign-in and sign-out.
// Session is nil after a sign-out.
type SessionEvent struct {
	UserID    string
	SessionID string
	Session   *Session
}

// SignedIn reports whether the event starts a session.
func (e SessionEvent) SignedIn() bool {
	return e.Session != nil
}

// Provider issues and revokes sessions. Tokens are self-contained; the
// provider keeps only the ids of tokens signed out before they expire.
type Provider struct {
	authenticator Authenticator
	jwt           *JWTManager

	mu        sync.Mutex
	revoked   map[string]time.Time
	observers map[int]func(SessionEvent)
	nextObs   int
}

// NewProvider creates a session provider.
func NewProvider(authenticator Authenticator, jwt *JWTManager) *Provider {
	return &Provider{
		authenticator: authenticator,
		jwt:           jwt,
		revoked:       make(map[string]time.Time),
		observers:     make(map[int]func(SessionEvent)),
	}
}

// SignIn verifies the credentials and opens a session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, claims, err := p.jwt.Generate(user)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		ID:        claims.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	p.notify(SessionEvent{UserID: user.ID, SessionID: session.ID, Session: session})
	return session, nil
}

// SignOut revokes the token for the rest of its lifetime.
func (p *Provider) SignOut(token string) error {
	claims, err := p.Verify(token)
	if err != nil {
		return err
	}

	now := p.jwt.now()
	p.mu.Lock()
	for id, exp := range p.revoked {
		if now.After(exp) {
			delete(p.revoked, id)
		}
	}
	p.revoked[claims.ID] = claims.ExpiresAt.Time
	p.mu.Unlock()

	slog.Info("Session signed out", "user_id", claims.UserID)
	p.notify(SessionEvent{UserID: claims.UserID, SessionID: claims.ID})
	return nil
}

// Verify validates the token and checks it has not been signed out.
func (p *Provider) Verify(token string) (*Claims, error) {
	claims, err := p.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	_, revoked := p.revoked[claims.ID]
	p.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("%w: session signed out", ErrInvalidToken)
	}
	return claims, nil
}

// OnSessionChange registers fn for sign-in and sign-out events. The
// returned func removes it.
func (p *Provider) OnSessionChange(fn func(SessionEvent)) (cancel func()) {
	p.mu.Lock()
	id := p.nextObs
	p.nextObs++
	p.observers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.observers, id)
		p.mu.Unlock()
	}
}

func (p *Provider) notify(ev SessionEvent) {
	p.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(p.observers))
	for _, fn := range p.observers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
