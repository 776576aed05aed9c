package api

import (
	"time"

	"github.com/mdrianislam0or1/admin-dashboard/client"
	"github.com/mdrianislam0or1/admin-dashboard/session"
)

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	StatusPublished ArticleStatus = "published"
	StatusDraft     ArticleStatus = "draft"
)

// Article is the content record managed through the dashboard.
type Article struct {
	ID            string        `json:"_id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Author        string        `json:"author"`
	AuthorName    string        `json:"authorName,omitempty"`
	PublishedDate time.Time     `json:"publishedDate"`
	Status        ArticleStatus `json:"status"`
	Views         int           `json:"views"`
	Likes         int           `json:"likes"`
	Comments      int           `json:"comments"`
	Tags          []string      `json:"tags,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SortField names the article list orderings the API supports.
type SortField string

const (
	SortByViews         SortField = "views"
	SortByLikes         SortField = "likes"
	SortByComments      SortField = "comments"
	SortByPublishedDate SortField = "publishedDate"
	SortByTitle         SortField = "title"
)

// SortOrder is the list sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ArticleFilters selects and orders the article list. Zero values are left
// out of the request entirely.
type ArticleFilters struct {
	Author    string
	Status    ArticleStatus
	StartDate string
	EndDate   string
	Search    string
	Page      int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
}

// DefaultFilters returns the list view defaults: first page of ten, newest
// published first.
func DefaultFilters() ArticleFilters {
	return ArticleFilters{
		Page:      1,
		Limit:     10,
		SortBy:    SortByPublishedDate,
		SortOrder: SortDesc,
	}
}

// Params converts the filters to request parameters, skipping unset fields.
func (f ArticleFilters) Params() client.Params {
	params := client.Params{
		"author":    f.Author,
		"status":    string(f.Status),
		"startDate": f.StartDate,
		"endDate":   f.EndDate,
		"search":    f.Search,
		"sortBy":    string(f.SortBy),
		"sortOrder": string(f.SortOrder),
	}
	if f.Page > 0 {
		params["page"] = f.Page
	}
	if f.Limit > 0 {
		params["limit"] = f.Limit
	}
	return params
}

// DashboardStats is the aggregate card data of the dashboard landing page.
type DashboardStats struct {
	TotalArticles         int       `json:"totalArticles"`
	PublishedArticles     int       `json:"publishedArticles"`
	DraftArticles         int       `json:"draftArticles"`
	TotalViews            int       `json:"totalViews"`
	TotalLikes            int       `json:"totalLikes"`
	TotalComments         int       `json:"totalComments"`
	RecentArticles        []Article `json:"recentArticles"`
	TopPerformingArticles []Article `json:"topPerformingArticles"`
}

// PerformanceData is one point of a performance time series.
type PerformanceData struct {
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// Period is the analytics aggregation granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
)

// AnalyticsQuery selects a performance time series.
type AnalyticsQuery struct {
	ArticleID string
	StartDate string
	EndDate   string
	Period    Period
}

// Params converts the query to request parameters, skipping unset fields.
func (q AnalyticsQuery) Params() client.Params {
	return client.Params{
		"articleId": q.ArticleID,
		"startDate": q.StartDate,
		"endDate":   q.EndDate,
		"period":    string(q.Period),
	}
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	User         *session.User `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken,omitempty"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Password        string       `json:"password"`
	ConfirmPassword string       `json:"confirmPassword"`
	Role            session.Role `json:"role,omitempty"`
}

// UpdateProfileRequest carries the partial identity fields of a profile
// update. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// CreateArticleRequest is the payload for POST /articles.
type CreateArticleRequest struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Status  ArticleStatus `json:"status,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
}

// UpdateArticleRequest carries the partial fields of an article update. Nil
// fields are left untouched.
type UpdateArticleRequest struct {
	Title   *string        `json:"title,omitempty"`
	Content *string        `json:"content,omitempty"`
	Status  *ArticleStatus `json:"status,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
}

// ArticleList pairs a page of articles with its pagination window.
type ArticleList struct {
	Articles   []Article
	Pagination *client.Pagination
}
