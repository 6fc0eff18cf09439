package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"breedid-backend/internal/models"
)

const mirrorCollection = "users"

// RoleMirror copies role assignments into a secondary store so that other
// consumers of the identity provider can read them. The relational store
// stays the source of truth; mirror failures must never fail the primary
// operation, callers log and swallow them.
type RoleMirror interface {
	SetRole(ctx context.Context, user *models.User) error
}

// firestoreRoleMirror writes role documents into the identity provider's
// Firestore project, keyed by Firebase UID.
type firestoreRoleMirror struct {
	client *firestore.Client
}

// NewFirestoreRoleMirror creates a RoleMirror backed by Firestore.
func NewFirestoreRoleMirror(client *firestore.Client) RoleMirror {
	return &firestoreRoleMirror{client: client}
}

// SetRole merge-writes {email, role} into the users collection. Merge
// semantics keep any unrelated fields other systems may have written.
func (m *firestoreRoleMirror) SetRole(ctx context.Context, user *models.User) error {
	if user == nil || user.FirebaseUID == "" {
		return fmt.Errorf("role mirror requires a user with a firebase uid")
	}
	_, err := m.client.Collection(mirrorCollection).Doc(user.FirebaseUID).Set(ctx, map[string]interface{}{
		"email":    user.Email,
		"role":     string(user.Role),
		"isActive": user.IsActive,
	}, firestore.MergeAll)
	if err != nil {
		switch status.Code(err) {
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("role mirror unreachable for uid %s: %w", user.FirebaseUID, err)
		case codes.PermissionDenied:
			return fmt.Errorf("role mirror denied for uid %s: %w", user.FirebaseUID, err)
		default:
			return fmt.Errorf("role mirror write failed for uid %s: %w", user.FirebaseUID, err)
		}
	}
	return nil
}
