package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/auth"
	"github.com/mmynk/societyledger/internal/middleware"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/pkg/api"
)

// SessionProvider opens and closes administrator sessions.
type SessionProvider interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(token string) error
}

// UserReader looks up accounts.
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	sessions SessionProvider
	users    UserReader
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(sessions SessionProvider, users UserReader, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// SignIn checks the administrator's credentials and returns a bearer token.
func (s *AuthService) SignIn(ctx context.Context, req *connect.Request[api.SignInRequest]) (*connect.Response[api.SignInResponse], error) {
	s.logger.Info("SignIn request", "email", req.Msg.Email)

	if strings.TrimSpace(req.Msg.Email) == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	session, err := s.sessions.SignIn(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("SignIn failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to load signed-in user", "user_id", session.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User signed in", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.SignInResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toAPIUser(user),
	}), nil
}

// SignOut revokes the caller's token. Live dashboard streams opened with
// it are closed.
func (s *AuthService) SignOut(ctx context.Context, req *connect.Request[api.SignOutRequest]) (*connect.Response[api.Empty], error) {
	token := middleware.GetToken(ctx)
	if token == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.sessions.SignOut(token); err != nil {
		s.logger.Warn("SignOut failed", "user_id", middleware.GetUserID(ctx), "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User signed out", "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.Empty{}), nil
}

// GetCurrentUser returns the signed-in administrator.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UserResponse{User: toAPIUser(user)}), nil
}
