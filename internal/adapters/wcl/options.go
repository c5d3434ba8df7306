// Package wcl fetches a run's combat events from the Warcraft Logs API v2.
package wcl

import (
	"net/http"

	"github.com/veyra/wcl2mdt/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpc = hc
		}
	}
}

// WithTokenURL sets the OAuth token endpoint.
func WithTokenURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.tokenURL = u
		}
	}
}

// WithAPIURL sets the GraphQL endpoint.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiURL = u
		}
	}
}

// WithPageLimit caps the number of events requested per page.
func WithPageLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageLimit = n
		}
	}
}

// WithDedupeSize bounds the seen-set used to drop events re-delivered at
// page boundaries. Zero or negative means unbounded.
func WithDedupeSize(n int) Option {
	return func(c *Client) {
		c.dedupeSize = n
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}
