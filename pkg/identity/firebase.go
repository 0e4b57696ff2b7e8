package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(credentialsFile string) (*FirebaseProvider, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return &FirebaseProvider{client: client}, nil
}

func (f *FirebaseProvider) VerifyToken(ctx context.Context, idToken string) (*Token, error) {
	decoded, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	token := &Token{UID: decoded.UID}
	if name, ok := decoded.Claims["name"].(string); ok {
		token.DisplayName = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		token.PhotoURL = picture
	}
	if email, ok := decoded.Claims["email"].(string); ok {
		token.Email = email
	}

	// Fresh sign-ups may not carry profile claims yet.
	if token.DisplayName == "" || token.PhotoURL == "" {
		if record, err := f.client.GetUser(ctx, decoded.UID); err == nil {
			if token.DisplayName == "" {
				token.DisplayName = record.DisplayName
			}
			if token.PhotoURL == "" {
				token.PhotoURL = record.PhotoURL
			}
		}
	}

	return token, nil
}

func (f *FirebaseProvider) GetUser(ctx context.Context, uid string) (*Token, error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}

	return &Token{
		UID:         record.UID,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
		Email:       record.Email,
	}, nil
}

// UpdateProfile pushes new display name and photo values back to the
// identity provider so they survive across devices.
func (f *FirebaseProvider) UpdateProfile(ctx context.Context, uid, displayName, photoURL string) error {
	params := (&auth.UserToUpdate{})
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	if photoURL != "" {
		params = params.PhotoURL(photoURL)
	}

	if _, err := f.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}
