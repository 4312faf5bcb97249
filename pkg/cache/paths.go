package cache

// Public read paths revalidated by admin mutations across services.
const (
	PathProducts  = "/api/v1/products"
	PathFacets    = "/api/v1/facets"
	PathNews      = "/api/v1/news"
	PathTutorials = "/api/v1/tutorials"
	PathSettings  = "/api/v1/settings"
)

// TagFacets groups the memoized filter facets.
const TagFacets = "facets"
