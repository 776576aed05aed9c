package api

import (
	"net/url"

	"github.com/mdrianislam0or1/admin-dashboard/cache"
)

// Cache key builders. Consumers use these with Cache().Subscribe to pin the
// entries their views depend on.

// ProfileKey is the cache key of the authenticated user's profile.
func ProfileKey() cache.Key {
	return cache.NewKey(TagProfile, "")
}

// ArticlesKey is the cache key of an article list query. Filters with the
// same content always land on the same key regardless of field order.
func ArticlesKey(filters ArticleFilters) cache.Key {
	return cache.NewKey(TagArticle, filters.Params().Encode())
}

// ArticleKey is the cache key of a single article, carrying its scoped tag.
func ArticleKey(id string) cache.Key {
	return cache.NewKey(TagArticle, "id="+url.QueryEscape(id), cache.Scoped(TagArticle, id))
}

// DashboardStatsKey is the cache key of the dashboard aggregate stats.
func DashboardStatsKey() cache.Key {
	return cache.NewKey(TagAnalytics, "dashboard")
}

// PerformanceKey is the cache key of a performance time-series query.
func PerformanceKey(q AnalyticsQuery) cache.Key {
	return cache.NewKey(TagAnalytics, "performance?"+q.Params().Encode())
}

// ArticleAnalyticsKey is the cache key of one article's analytics, carrying
// its scoped tag.
func ArticleAnalyticsKey(articleID string, period Period) cache.Key {
	if period == "" {
		period = PeriodDaily
	}
	return cache.NewKey(
		TagAnalytics,
		"article/"+url.QueryEscape(articleID)+"?period="+string(period),
		cache.Scoped(TagAnalytics, articleID),
	)
}
