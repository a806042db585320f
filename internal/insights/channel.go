// Package insights holds the channel attribution and metric aggregation
// pipeline: it folds the paginated order stream into per-channel running
// totals and combines them with ad spend into derived ratios.
package insights

import (
	"slices"
	"strings"

	"github.com/kansothelabel/insights-manager/internal/entity"
)

// metaSources are the utm_source values attributed to Meta. The template
// placeholder is what Meta's dynamic URL macro leaves behind when a campaign
// never expands it.
var metaSources = []string{"facebook", "instagram", "meta", "fb", "ig", "{{site_source_name}}"}

// Classify attributes an order to a channel from its customer journey. The
// first visit carrying a non-empty utm_source wins and scanning stops there;
// later visits never override it. No match means organic.
func Classify(o *entity.Order) entity.Channel {
	var src string
	for _, m := range o.Journey {
		if m.UTMSource != "" {
			src = strings.ToLower(m.UTMSource)
			break
		}
	}
	if src == "" {
		return entity.ChannelOrganic
	}
	if slices.Contains(metaSources, src) {
		return entity.ChannelMeta
	}
	if src == "google" {
		return entity.ChannelGoogle
	}
	return entity.ChannelOrganic
}
