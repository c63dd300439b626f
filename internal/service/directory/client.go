package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/services"
)

// client resolves user profiles from the identity provider's admin API.
// The service key grants elevated read access; requests carry it both as a
// bearer token and as the provider's apikey header.
type client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a directory client against the identity provider
func NewClient(baseURL, serviceKey string, logger *slog.Logger) services.DirectoryService {
	return &client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// adminUser is the provider's admin-API user shape. Display names live in
// the free-form user_metadata object.
type adminUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// GetProfile fetches one subject's profile by id
func (c *client) GetProfile(ctx context.Context, subjectID string) (*models.UserProfile, error) {
	url := fmt.Sprintf("%s/auth/v1/admin/users/%s", c.baseURL, subjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("profile %s: %w", subjectID, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch profile failed with status %d: %s", resp.StatusCode, string(body))
	}

	var user adminUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}

	profile := &models.UserProfile{
		SubjectID: user.ID,
		Email:     user.Email,
		FullName:  metaString(user.UserMetadata, "full_name"),
		FirstName: metaString(user.UserMetadata, "first_name"),
		LastName:  metaString(user.UserMetadata, "last_name"),
	}

	c.logger.Debug("profile resolved",
		"subject_id", subjectID,
		"has_name", profile.DisplayName() != "",
	)

	return profile, nil
}

func metaString(meta map[string]any, key string) string {
	if value, ok := meta[key].(string); ok {
		return value
	}
	return ""
}
