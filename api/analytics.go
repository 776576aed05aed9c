package api

import (
	"context"
	"net/url"

	"github.com/mdrianislam0or1/admin-dashboard/client"
)

// GetDashboardStats reads the dashboard aggregates through the cache.
func (a *API) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	result, err := a.cache.Query(ctx, DashboardStatsKey(), func(ctx context.Context) (any, error) {
		var env client.Envelope[DashboardStats]
		if err := a.client.Get(ctx, "/analytics/dashboard", nil, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*DashboardStats), nil
}

// GetPerformanceData reads a performance time series through the cache. Each
// distinct query is its own entry.
func (a *API) GetPerformanceData(ctx context.Context, q AnalyticsQuery) ([]PerformanceData, error) {
	params := q.Params()
	result, err := a.cache.Query(ctx, PerformanceKey(q), func(ctx context.Context) (any, error) {
		var env client.Envelope[[]PerformanceData]
		if err := a.client.Get(ctx, "/analytics/performance", params, &env); err != nil {
			return nil, err
		}
		return env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]PerformanceData), nil
}

// GetArticleAnalytics reads one article's time series, defaulting the period
// to daily, under the article's scoped Analytics tag.
func (a *API) GetArticleAnalytics(ctx context.Context, articleID string, period Period) ([]PerformanceData, error) {
	if period == "" {
		period = PeriodDaily
	}
	params := client.Params{"period": string(period)}

	result, err := a.cache.Query(ctx, ArticleAnalyticsKey(articleID, period), func(ctx context.Context) (any, error) {
		var env client.Envelope[[]PerformanceData]
		if err := a.client.Get(ctx, "/analytics/article/"+url.PathEscape(articleID), params, &env); err != nil {
			return nil, err
		}
		return env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]PerformanceData), nil
}
