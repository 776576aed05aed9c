package api

import (
	"context"
	"net/url"

	"github.com/mdrianislam0or1/admin-dashboard/cache"
	"github.com/mdrianislam0or1/admin-dashboard/client"
)

// ListArticles reads a filtered, paginated article list through the cache.
// Zero-value filters get the list view defaults. Overlapping list requests
// with different filters resolve in issue order: CurrentArticles never goes
// backwards to an older request's result.
func (a *API) ListArticles(ctx context.Context, filters ArticleFilters) (ArticleList, error) {
	if filters == (ArticleFilters{}) {
		filters = DefaultFilters()
	}
	params := filters.Params()
	key := ArticlesKey(filters)

	result, err := a.cache.QueryView(ctx, a.articleList, key, func(ctx context.Context) (any, error) {
		var env client.Envelope[[]Article]
		if err := a.client.Get(ctx, "/articles", params, &env); err != nil {
			return nil, err
		}
		return ArticleList{Articles: env.Data, Pagination: env.Pagination}, nil
	})
	if err != nil {
		return ArticleList{}, err
	}
	return result.(ArticleList), nil
}

// CurrentArticles returns the newest resolved article list, regardless of
// the order in which overlapping list requests completed. The boolean is
// false until any list query has resolved.
func (a *API) CurrentArticles() (ArticleList, bool) {
	_, data, ok := a.articleList.Current()
	if !ok {
		return ArticleList{}, false
	}
	return data.(ArticleList), true
}

// GetArticle reads one article through the cache under its scoped tag.
func (a *API) GetArticle(ctx context.Context, id string) (*Article, error) {
	result, err := a.cache.Query(ctx, ArticleKey(id), func(ctx context.Context) (any, error) {
		var env client.Envelope[Article]
		if err := a.client.Get(ctx, "/articles/"+url.PathEscape(id), nil, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Article), nil
}

// CreateArticle writes a new article via POST /articles. Invalidates every
// Article entry.
func (a *API) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[Article]
		if err := a.client.Post(ctx, "/articles", req, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	}, cache.Wide(TagArticle))
	if err != nil {
		return nil, err
	}
	return result.(*Article), nil
}

// UpdateArticle writes partial fields via PUT /articles/:id. Invalidates the
// article's scoped entry and every Article list entry.
func (a *API) UpdateArticle(ctx context.Context, id string, req UpdateArticleRequest) (*Article, error) {
	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[Article]
		if err := a.client.Put(ctx, "/articles/"+url.PathEscape(id), req, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	}, cache.Scoped(TagArticle, id), cache.Wide(TagArticle))
	if err != nil {
		return nil, err
	}
	return result.(*Article), nil
}

// DeleteArticle removes an article via DELETE /articles/:id. Invalidates
// every Article entry.
func (a *API) DeleteArticle(ctx context.Context, id string) error {
	_, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, a.client.Delete(ctx, "/articles/"+url.PathEscape(id), nil)
	}, cache.Wide(TagArticle))
	return err
}

// IncrementViews bumps an article's view counter via PUT /articles/:id/views.
// Invalidates only the article's scoped entry.
func (a *API) IncrementViews(ctx context.Context, id string) (*Article, error) {
	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[Article]
		if err := a.client.Put(ctx, "/articles/"+url.PathEscape(id)+"/views", nil, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	}, cache.Scoped(TagArticle, id))
	if err != nil {
		return nil, err
	}
	return result.(*Article), nil
}
