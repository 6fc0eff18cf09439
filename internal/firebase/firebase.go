package firebase

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"breedid-backend/internal/config"
)

// Clients bundles the Firebase Admin SDK handles the application uses: the
// Auth client verifies bearer tokens, the Firestore client backs the
// best-effort role mirror.
type Clients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
}

// Init initializes the Firebase Admin SDK from the loaded configuration.
// Credentials come from a service-account file path or a base64-encoded
// service-account JSON blob. Callers are expected to have checked
// cfg.FirebaseConfigured() first.
func Init(ctx context.Context, cfg *config.Config) (*Clients, error) {
	var opt option.ClientOption
	switch {
	case cfg.GoogleApplicationCredentials != "":
		opt = option.WithCredentialsFile(cfg.GoogleApplicationCredentials)
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		jsonKey, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not valid base64: %w", err)
		}
		opt = option.WithCredentialsJSON(jsonKey)
	default:
		return nil, fmt.Errorf("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 must be set")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	return &Clients{App: app, Auth: authClient, Firestore: fsClient}, nil
}

// Close releases the Firestore client. The Auth client holds no connection
// state of its own.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
