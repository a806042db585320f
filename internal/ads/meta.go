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

// MetaInsights reads account level spend from the Graph API insights edge.
// It authenticates with its own long lived token and ignores the access
// token argument of the ad spend contract.
type MetaInsights struct {
	c   *Config
	cli *resty.Client
}

func NewMetaInsights(c *Config) *MetaInsights {
	cli := resty.New()
	cli.SetBaseURL(graphAPIBaseURL)
	cli.SetTimeout(15 * time.Second)
	return &MetaInsights{c: c, cli: cli}
}

func (s *MetaInsights) Spend(ctx context.Context, startDate, endDate, _ string) (decimal.Decimal, error) {
	resp, err := s.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "spend",
			"level":        "account",
			"time_range":   fmt.Sprintf(`{"since":"%s","until":"%s"}`, startDate, endDate),
			"access_token": s.c.FBAccessToken,
		}).
		Get(fmt.Sprintf("/v19.0/act_%s/insights", s.c.FBAdAccountID))
	if err != nil {
		return decimal.Zero, &gerr.UpstreamFetchError{Source: "meta-insights", Err: err}
	}
	if resp.IsError() {
		return decimal.Zero, &gerr.UpstreamFetchError{
			Source:  "meta-insights",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode()),
			Payload: resp.String(),
		}
	}

	var body struct {
		Data []struct {
			Spend string `json:"spend"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return decimal.Zero, &gerr.UpstreamShapeError{Source: "meta-insights", Body: resp.String()}
	}
	if len(body.Data) == 0 {
		return decimal.Zero, nil
	}
	return entity.ParseAmount(body.Data[0].Spend), nil
}
