// Package shopify implements the order source against the Shopify Admin
// GraphQL API. All dynamic JSON handling lives here: responses are decoded
// into typed entities at this boundary, with the defaulting rules applied
// once, so the aggregation code never touches raw payloads.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
)

// overridable in tests
var endpointScheme = "https"

// Config holds the immutable storefront credentials.
type Config struct {
	Domain      string `mapstructure:"domain"`
	AccessToken string `mapstructure:"access_token"`
	APIVersion  string `mapstructure:"api_version"`
}

// Client is the concrete order source.
type Client struct {
	c   *Config
	cli *resty.Client
}

// New creates a client bound to the configured store.
func New(c *Config) *Client {
	ver := c.APIVersion
	if ver == "" {
		ver = "2023-10"
	}
	cli := resty.New()
	cli.SetBaseURL(fmt.Sprintf("%s://%s/admin/api/%s", endpointScheme, c.Domain, ver))
	cli.SetTimeout(30 * time.Second)
	cli.SetHeader("Content-Type", "application/json")
	cli.SetHeader("X-Shopify-Access-Token", c.AccessToken)

	return &Client{c: c, cli: cli}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// QueryOrders requests a single page of orders. A transport or HTTP failure
// becomes an UpstreamFetchError carrying the response body; a response
// without the orders collection becomes an UpstreamShapeError.
func (s *Client) QueryOrders(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error) {
	vars := map[string]any{
		"query": q.Filter,
		"first": q.First,
	}
	if q.After != "" {
		vars["after"] = q.After
	} else {
		vars["after"] = nil
	}

	resp, err := s.cli.R().
		SetContext(ctx).
		SetBody(graphqlRequest{Query: ordersQuery(q.LineItemsFirst, q.Reverse), Variables: vars}).
		Post("/graphql.json")
	if err != nil {
		return nil, &gerr.UpstreamFetchError{Source: "shopify", Err: err}
	}
	if resp.IsError() {
		return nil, &gerr.UpstreamFetchError{
			Source:  "shopify",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode()),
			Payload: truncate(resp.String(), 2048),
		}
	}

	var body ordersResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &gerr.UpstreamShapeError{Source: "shopify", Body: truncate(resp.String(), 2048)}
	}
	if body.Data == nil || body.Data.Orders == nil {
		return nil, &gerr.UpstreamShapeError{Source: "shopify", Body: truncate(resp.String(), 2048)}
	}

	return body.Data.Orders.toPage(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
