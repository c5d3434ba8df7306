package wcl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veyra/wcl2mdt/pkg/logger"
	"github.com/veyra/wcl2mdt/pkg/metrics"
)

// Warcraft Logs API v2 endpoints.
const (
	defaultTokenURL  = "https://www.warcraftlogs.com/oauth/token"
	defaultAPIURL    = "https://www.warcraftlogs.com/api/v2/client"
	defaultPageLimit = 10_000
	defaultTimeout   = 30 * time.Second
)

// Client talks to the Warcraft Logs API v2: OAuth client-credentials token
// exchange, then GraphQL queries against the client endpoint.
type Client struct {
	httpc      *http.Client
	tokenURL   string
	apiURL     string
	pageLimit  int
	dedupeSize int
	token      string
	log        logger.Logger
}

// New creates a Client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		httpc:     &http.Client{Timeout: defaultTimeout},
		tokenURL:  defaultTokenURL,
		apiURL:    defaultAPIURL,
		pageLimit: defaultPageLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("wcl")
	}
	return c
}

// Authenticate exchanges API credentials for an access token used by all
// subsequent queries.
func (c *Client) Authenticate(ctx context.Context, clientID, clientSecret string) error {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.SetBasicAuth(clientID, clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveRequestDuration(time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: 401 unauthorized, check client id and secret", ErrAuth)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: token endpoint returned %s", ErrAuth, resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if body.AccessToken == "" {
		return fmt.Errorf("%w: token endpoint returned no access token", ErrAuth)
	}

	c.token = body.AccessToken
	c.log.Debug(ctx, "access token received")
	return nil
}

// graphql posts one query and unmarshals the data envelope into out.
func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGraphQL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGraphQL, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveRequestDuration(time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGraphQL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: api returned %s: %s", ErrGraphQL, resp.Status, snippet)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrGraphQL, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrGraphQL, err)
	}
	return nil
}
