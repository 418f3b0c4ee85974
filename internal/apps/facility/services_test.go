package facility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchCacheKeyRotatesWithVersion(t *testing.T) {
	before := searchCacheKey("silvergrove", 1, 37.5665, 126.978, 5)
	after := searchCacheKey("silvergrove", 2, 37.5665, 126.978, 5)

	// Bumping the tenant version orphans every key minted under the old
	// one, so cached search results die with the mutation.
	assert.NotEqual(t, before, after)
	assert.Equal(t, before, searchCacheKey("silvergrove", 1, 37.5665, 126.978, 5))
}

func TestSearchCacheKeyIsolatesTenants(t *testing.T) {
	a := searchCacheKey("silvergrove", 1, 37.5665, 126.978, 5)
	b := searchCacheKey("harborview", 1, 37.5665, 126.978, 5)
	assert.NotEqual(t, a, b)

	assert.NotEqual(t, searchVersionKey("silvergrove"), searchVersionKey("harborview"))
}

func TestSearchVersionWithoutCache(t *testing.T) {
	svc := NewService(nil, nil, nil)
	assert.EqualValues(t, 0, svc.searchVersion(context.Background(), "silvergrove"))
}
