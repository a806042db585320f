// Package ads aggregates spend from the two advertising platforms. Both
// platform queries run concurrently per aggregation; either one failing
// fails the whole aggregation so partial spend is never reported.
package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kansothelabel/insights-manager/internal/entity"
	gerr "github.com/kansothelabel/insights-manager/internal/errors"
	"github.com/shopspring/decimal"
)

// overridable in tests
var (
	googleOAuthBaseURL = "https://oauth2.googleapis.com"
	googleAdsBaseURL   = "https://googleads.googleapis.com"
	graphAPIBaseURL    = "https://graph.facebook.com"
)

// Config holds the immutable ad platform credentials.
type Config struct {
	GoogleClientID        string `mapstructure:"google_client_id"`
	GoogleClientSecret    string `mapstructure:"google_client_secret"`
	GoogleRefreshToken    string `mapstructure:"google_refresh_token"`
	GoogleDeveloperToken  string `mapstructure:"google_ads_developer_token"`
	GoogleCustomerID      string `mapstructure:"google_ads_customer_id"`
	GoogleLoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	FBAdAccountID         string `mapstructure:"fb_ad_account_id"`
	FBAccessToken         string `mapstructure:"fb_access_token"`
}

// GoogleTokenSource exchanges the long lived refresh token for a short lived
// access token. A fresh token is requested per aggregation, never cached.
type GoogleTokenSource struct {
	c   *Config
	cli *resty.Client
}

func NewGoogleTokenSource(c *Config) *GoogleTokenSource {
	cli := resty.New()
	cli.SetBaseURL(googleOAuthBaseURL)
	cli.SetTimeout(10 * time.Second)
	return &GoogleTokenSource{c: c, cli: cli}
}

func (t *GoogleTokenSource) AccessToken(ctx context.Context) (string, error) {
	resp, err := t.cli.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     t.c.GoogleClientID,
			"client_secret": t.c.GoogleClientSecret,
			"grant_type":    "refresh_token",
			"refresh_token": t.c.GoogleRefreshToken,
		}).
		Post("/token")
	if err != nil {
		return "", &gerr.UpstreamFetchError{Source: "google-oauth", Err: err}
	}
	if resp.IsError() {
		return "", &gerr.UpstreamFetchError{
			Source:  "google-oauth",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode()),
			Payload: resp.String(),
		}
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", &gerr.UpstreamShapeError{Source: "google-oauth", Body: resp.String()}
	}
	if body.AccessToken == "" {
		return "", &gerr.UpstreamShapeError{Source: "google-oauth", Body: resp.String()}
	}
	return body.AccessToken, nil
}

// GoogleAds reads account level cost from the Google Ads search endpoint.
type GoogleAds struct {
	c   *Config
	cli *resty.Client
}

func NewGoogleAds(c *Config) *GoogleAds {
	cli := resty.New()
	cli.SetBaseURL(googleAdsBaseURL)
	cli.SetTimeout(15 * time.Second)
	return &GoogleAds{c: c, cli: cli}
}

// Spend runs a GAQL cost query for the inclusive date range and converts the
// returned micros to currency units. An empty result set is zero spend.
func (s *GoogleAds) Spend(ctx context.Context, startDate, endDate, accessToken string) (decimal.Decimal, error) {
	gaql := fmt.Sprintf(
		"SELECT metrics.cost_micros FROM customer WHERE segments.date BETWEEN '%s' AND '%s'",
		startDate, endDate,
	)
	resp, err := s.cli.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("developer-token", s.c.GoogleDeveloperToken).
		SetHeader("login-customer-id", s.c.GoogleLoginCustomerID).
		SetAuthToken(accessToken).
		SetBody(map[string]string{"query": gaql}).
		Post(fmt.Sprintf("/v20/customers/%s/googleAds:search", s.c.GoogleCustomerID))
	if err != nil {
		return decimal.Zero, &gerr.UpstreamFetchError{Source: "google-ads", Err: err}
	}
	if resp.IsError() {
		return decimal.Zero, &gerr.UpstreamFetchError{
			Source:  "google-ads",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode()),
			Payload: resp.String(),
		}
	}

	var body struct {
		Results []struct {
			Metrics struct {
				CostMicros json.Number `json:"costMicros"`
			} `json:"metrics"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return decimal.Zero, &gerr.UpstreamShapeError{Source: "google-ads", Body: resp.String()}
	}
	if len(body.Results) == 0 {
		return decimal.Zero, nil
	}
	micros := entity.ParseAmount(body.Results[0].Metrics.CostMicros.String())
	return micros.Shift(-6), nil
}
