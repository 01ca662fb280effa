// Package identity wraps the external identity provider. The provider
// owns credentials and sessions of record; this system only exchanges a
// provider access token for a verified profile.
package identity

import (
	"errors"
	"strings"

	"github.com/supabase-community/auth-go"
)

// Profile is the stable identity the provider yields for a verified
// bearer credential.
type Profile struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// Resolver verifies provider access tokens.
type Resolver struct {
	client auth.Client
}

// New builds a resolver. A custom URL overrides the hosted project URL
// for self-hosted deployments.
func New(projectRef, apiKey, url string) (*Resolver, error) {
	if apiKey == "" {
		return nil, errors.New("identity provider api key is required")
	}
	if projectRef == "" && url == "" {
		return nil, errors.New("identity provider project ref or url is required")
	}
	client := auth.New(projectRef, apiKey)
	if url != "" {
		client = client.WithCustomAuthURL(url)
	}
	return &Resolver{client: client}, nil
}

// Resolve verifies the access token with the provider and returns the
// user's profile. A rejected token is an authentication failure, not a
// transient error; there is no retry.
func (r *Resolver) Resolve(accessToken string) (*Profile, error) {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return nil, errors.New("access token is required")
	}

	user, err := r.client.WithToken(token).GetUser()
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:    user.ID.String(),
		Email: user.Email,
	}
	if name, ok := metaString(user.UserMetadata, "full_name", "name", "user_name"); ok {
		profile.Name = name
	}
	if avatar, ok := metaString(user.UserMetadata, "avatar_url", "picture"); ok {
		profile.AvatarURL = avatar
	}
	return profile, nil
}

func metaString(meta map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := meta[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
