package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"breedid-backend/internal/models"
	"breedid-backend/internal/store"
)

// mirrorTimeout bounds each fire-and-forget role-mirror write.
const mirrorTimeout = 10 * time.Second

// userService implements UserService.
type userService struct {
	users    store.UserRepository
	verifier TokenVerifier    // nil when the identity provider is unconfigured
	mirror   store.RoleMirror // nil when Firestore is unavailable
	log      *zap.Logger
}

// NewUserService creates a UserService. verifier and mirror may be nil; a
// nil verifier puts authentication into degraded mode, a nil mirror simply
// skips the best-effort role mirroring.
func NewUserService(users store.UserRepository, verifier TokenVerifier, mirror store.RoleMirror, log *zap.Logger) UserService {
	return &userService{users: users, verifier: verifier, mirror: mirror, log: log}
}

// Authenticate implements the authenticate-or-register flow: one endpoint
// serves both first login and registration, keyed off whether a local user
// already exists for the verified subject.
func (s *userService) Authenticate(ctx context.Context, idToken string) (*models.User, bool, error) {
	if s.verifier == nil {
		return nil, false, ErrAuthUnavailable
	}

	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, false, fmt.Errorf("%w: token carries no email claim", ErrInvalidRequest)
	}
	displayName, _ := token.Claims["name"].(string)
	photoURL, _ := token.Claims["picture"].(string)

	user, err := s.users.GetByFirebaseUID(ctx, token.UID)
	if err == nil {
		if !user.IsActive {
			return nil, false, ErrAccountDisabled
		}
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user %s: %w", token.UID, err)
	}

	newUser := &models.User{
		ID:          uuid.NewString(),
		FirebaseUID: token.UID,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        models.RoleFarmer,
		IsActive:    true,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, false, fmt.Errorf("failed to register user %s: %w", token.UID, err)
	}
	s.log.Info("registered new user",
		zap.String("userId", newUser.ID),
		zap.String("firebaseUid", newUser.FirebaseUID),
		zap.String("role", string(newUser.Role)))
	s.mirrorRole(newUser)

	return newUser, true, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.GetByFirebaseUID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: no local account for this identity", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve firebase uid: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %s: %w", id, err)
	}
	return user, nil
}

// UpdateRole changes a user's role and mirrors the new assignment. The
// mirror write is best effort and never affects the returned result.
func (s *userService) UpdateRole(ctx context.Context, id string, role string) (*models.User, error) {
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = parsed
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role for user %s: %w", id, err)
	}
	s.log.Info("updated user role",
		zap.String("userId", user.ID),
		zap.String("role", string(user.Role)))
	s.mirrorRole(user)
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return fmt.Errorf("%w: cannot deactivate your own account", ErrInvalidRequest)
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to deactivate user %s: %w", id, err)
	}
	s.log.Info("deactivated user", zap.String("userId", id))
	return nil
}

func (s *userService) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	offset := (page - 1) * limit
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) Stats(ctx context.Context) (*models.UserStats, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user stats: %w", err)
	}
	return stats, nil
}

// mirrorRole fires the secondary-store write without waiting on it. A
// failed mirror is logged and swallowed, the relational row already
// committed and stays authoritative.
func (s *userService) mirrorRole(user *models.User) {
	if s.mirror == nil {
		return
	}
	u := *user
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.mirror.SetRole(ctx, &u); err != nil {
			s.log.Warn("role mirror write failed",
				zap.String("firebaseUid", u.FirebaseUID),
				zap.Error(err))
		}
	}()
}
