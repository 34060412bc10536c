// Package pexels looks up stock destination photos. It backfills bookings
// whose raw documents carry no usable images.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const pexelsAPIBaseURL = "https://api.pexels.com/v1"

// ClientInterface defines the interface for Pexels client operations.
type ClientInterface interface {
	SearchDestinationImage(ctx context.Context, query string) (string, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

type SearchResponse struct {
	Photos []Photo `json:"photos"`
}

type Photo struct {
	ID     int    `json:"id"`
	Source Source `json:"src"`
}

type Source struct {
	Landscape string `json:"landscape"`
}

func NewClient(apiKey string, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    pexelsAPIBaseURL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// SearchDestinationImage returns one landscape photo URL for the query, or
// an empty string when nothing matched.
func (c *Client) SearchDestinationImage(ctx context.Context, query string) (string, error) {
	c.log.Debugw("Starting Pexels image search", "query", query)

	endpoint := fmt.Sprintf("%s/search", c.baseURL)

	params := url.Values{}
	params.Add("query", query)
	params.Add("per_page", "1")
	params.Add("orientation", "landscape")

	finalURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		c.log.Errorw("Failed to create Pexels request", "error", err)
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorw("Failed to execute Pexels HTTP request", "error", err)
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("Pexels API returned non-OK status", "statusCode", resp.StatusCode)
		return "", fmt.Errorf("pexels API returned status: %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.log.Errorw("Failed to decode Pexels response", "error", err)
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Photos) == 0 {
		c.log.Debugw("No photos found in Pexels response", "query", query)
		return "", nil
	}

	imageURL := searchResp.Photos[0].Source.Landscape
	c.log.Debugw("Returning destination image URL from Pexels", "imageURL", imageURL)
	return imageURL, nil
}
