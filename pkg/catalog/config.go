package catalog

import "time"

// Config represents the configuration for the remote catalog client
type Config struct {
	// BaseURL is the catalog API base URL, e.g. https://fakestoreapi.com
	BaseURL string

	// Timeout is the per-request timeout for catalog lookups
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
