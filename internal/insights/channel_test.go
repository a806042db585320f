package insights

import (
	"testing"

	"github.com/kansothelabel/insights-manager/internal/entity"
	"github.com/stretchr/testify/assert"
)

func journeyOrder(sources ...string) *entity.Order {
	o := &entity.Order{}
	for _, s := range sources {
		o.Journey = append(o.Journey, entity.VisitMoment{UTMSource: s})
	}
	return o
}

func TestClassify_EmptyJourneyIsOrganic(t *testing.T) {
	assert.Equal(t, entity.ChannelOrganic, Classify(&entity.Order{}))
	assert.Equal(t, entity.ChannelOrganic, Classify(journeyOrder()))
	assert.Equal(t, entity.ChannelOrganic, Classify(journeyOrder("", "")))
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// a later google visit must not override the first utm source
	assert.Equal(t, entity.ChannelMeta, Classify(journeyOrder("FACEBOOK", "google")))
	assert.Equal(t, entity.ChannelGoogle, Classify(journeyOrder("google", "facebook")))
}

func TestClassify_SkipsBlankSources(t *testing.T) {
	assert.Equal(t, entity.ChannelGoogle, Classify(journeyOrder("", "google")))
}

func TestClassify_MetaAliases(t *testing.T) {
	for _, src := range []string{"facebook", "Instagram", "META", "fb", "IG", "{{site_source_name}}"} {
		assert.Equal(t, entity.ChannelMeta, Classify(journeyOrder(src)), src)
	}
}

func TestClassify_UnknownSourceIsOrganic(t *testing.T) {
	assert.Equal(t, entity.ChannelOrganic, Classify(journeyOrder("newsletter")))
	assert.Equal(t, entity.ChannelOrganic, Classify(journeyOrder("bing")))
}
