// internal/app/system/identity/clerk.go
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is Clerk's backend API.
const DefaultBaseURL = "https://api.clerk.com/v1"

// ClerkClient implements Client against Clerk's backend API using the
// instance secret key.
type ClerkClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewClerkClient creates a client for the given API base URL (blank means
// DefaultBaseURL) and secret key.
func NewClerkClient(baseURL, secretKey string) *ClerkClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ClerkClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// User fetches one provider user by id. Returns ErrUserNotFound for 404s.
func (c *ClerkClient) User(ctx context.Context, id string) (*User, error) {
	u := c.baseURL + "/users/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity provider returned %s", resp.Status)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding identity provider response: %w", err)
	}
	return &user, nil
}
