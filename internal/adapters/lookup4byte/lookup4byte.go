// Package lookup4byte implements decode.SelectorLookupService against
// 4byte.directory, the external unverified signature-lookup tier of the
// cascade. A miss, timeout, or HTTP failure here is never fatal: the
// orchestrator treats a nil result exactly like "no external signature
// was found."
package lookup4byte

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/signguard/signguard/internal/decode"
	"github.com/signguard/signguard/internal/domain"
	"github.com/signguard/signguard/internal/domain/errs"
)

const defaultBaseURL = "https://www.4byte.directory/api/v1/signatures/"

// Client queries 4byte.directory's public signature database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a Client with the given timeout, defaulting to 5s.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type signatureResult struct {
	ID            int    `json:"id"`
	TextSignature string `json:"text_signature"`
}

type signatureResponse struct {
	Results []signatureResult `json:"results"`
}

// Lookup queries 4byte.directory for candidate signatures matching sel.
// The lowest-ID result is taken as the canonical signature (4byte.directory
// orders by creation time; the oldest submission is the least likely to be
// a collision squatting on a popular selector), with every match carried
// in AllMatches for display.
func (c *Client) Lookup(ctx context.Context, sel domain.Selector) (*decode.ExternalLookupResult, error) {
	q := url.Values{}
	q.Set("hex_signature", sel.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrExternalLookupFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrExternalLookupTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrExternalLookupFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", errs.ErrExternalLookupFailure, resp.StatusCode)
	}

	var parsed signatureResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrExternalLookupFailure, err)
	}
	if len(parsed.Results) == 0 {
		return nil, nil
	}

	sort.Slice(parsed.Results, func(i, j int) bool { return parsed.Results[i].ID < parsed.Results[j].ID })

	matches := make([]string, len(parsed.Results))
	for i, r := range parsed.Results {
		matches[i] = r.TextSignature
	}

	return &decode.ExternalLookupResult{
		Signature:  matches[0],
		AllMatches: matches,
	}, nil
}
