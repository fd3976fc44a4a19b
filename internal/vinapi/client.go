// Package vinapi is a client for an external VIN decode service. The
// backend runs fully mocked without it; the client is only constructed
// when an API base URL is configured.
package vinapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DecodedVehicle is the subset of the decode response the vehicle
// lookup tool consumes.
type DecodedVehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// Client calls the VIN decode API over HTTP.
type Client struct {
	http *resty.Client
}

// New creates a client for the decode service at baseURL. The token is
// optional; when present it is sent as a bearer credential.
func New(baseURL, token string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		http.SetAuthToken(token)
	}
	return &Client{http: http}
}

// Decode resolves a VIN to vehicle details.
func (c *Client) Decode(ctx context.Context, vin string) (*DecodedVehicle, error) {
	var decoded DecodedVehicle
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("vin", vin).
		SetResult(&decoded).
		Get("/vehicles/{vin}")
	if err != nil {
		return nil, fmt.Errorf("vin decode request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("vin decode failed with status %d", resp.StatusCode())
	}
	return &decoded, nil
}
