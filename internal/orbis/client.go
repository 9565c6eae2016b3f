// Package orbis looks up PlayStation 4 title metadata from the orbispatches API.
package orbis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/f1o/renovate/internal/config"
	"github.com/f1o/renovate/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrLookupUnsuccessful is returned when the API answers with success=false.
	ErrLookupUnsuccessful = errors.New("title lookup unsuccessful")
	// ErrMalformedResponse is returned when the body lacks the fields needed for a title.
	ErrMalformedResponse = errors.New("malformed lookup response")
)

// Fetcher performs a GET and returns the body of a successful response.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type lookupResponse struct {
	Success  bool            `json:"success"`
	Metadata *lookupMetadata `json:"metadata"`
}

type lookupMetadata struct {
	Name           string  `json:"name"`
	CurrentVersion string  `json:"currentVersion"`
	Region         *string `json:"region"`
	Icon           string  `json:"icon"`
}

// Client resolves tracked titles into FetchResults.
type Client struct {
	baseURL string
	cfg     config.OrbisConfig
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewClient creates a client against cfg.APIBaseURL.
func NewClient(cfg config.OrbisConfig, fetcher Fetcher, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "OrbisClient").Logger(),
	}
}

// Category is the history partition this client feeds.
func (c *Client) Category() models.Category {
	return models.CategoryOrbis
}

// LookupURL returns the metadata endpoint for titleID.
func (c *Client) LookupURL(titleID string) string {
	return fmt.Sprintf("%s/api/lookup?titleid=%s", c.baseURL, url.QueryEscape(titleID))
}

// TitleLink returns the public page of titleID.
func (c *Client) TitleLink(titleID string) string {
	return fmt.Sprintf(c.linkTemplate(), url.PathEscape(titleID))
}

func (c *Client) linkTemplate() string {
	return strings.ReplaceAll(c.baseURL, "%", "%%") + "/%s"
}

// Presentation describes how orbis updates are rendered.
func (c *Client) Presentation() models.PlatformPresentation {
	return models.PlatformPresentation{
		Color:        c.cfg.PlatformColor,
		LogoURL:      c.cfg.PlatformLogoURL,
		LinkTemplate: c.linkTemplate(),
	}
}

// FetchTitle looks up titleID. Transport failures are returned as-is from the
// fetcher; an unsuccessful or incomplete answer returns ErrLookupUnsuccessful
// or ErrMalformedResponse.
func (c *Client) FetchTitle(ctx context.Context, titleID string) (*models.FetchResult, error) {
	body, err := c.fetcher.Fetch(ctx, c.LookupURL(titleID))
	if err != nil {
		return nil, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !resp.Success {
		return nil, ErrLookupUnsuccessful
	}
	if resp.Metadata == nil {
		return nil, fmt.Errorf("%w: missing metadata", ErrMalformedResponse)
	}
	if resp.Metadata.Name == "" || resp.Metadata.CurrentVersion == "" {
		return nil, fmt.Errorf("%w: missing name or currentVersion", ErrMalformedResponse)
	}

	result := &models.FetchResult{
		TitleID:        titleID,
		Name:           resp.Metadata.Name,
		CurrentVersion: resp.Metadata.CurrentVersion,
		IconURL:        resp.Metadata.Icon,
		Link:           c.TitleLink(titleID),
	}
	if resp.Metadata.Region != nil {
		result.Region = *resp.Metadata.Region
	}

	c.logger.Debug().
		Str("title_id", titleID).
		Str("name", result.Name).
		Str("current_version", result.CurrentVersion).
		Msg("Title lookup succeeded")

	return result, nil
}
