package api

// Cache tag groups for the dashboard resources. Mutations declare which of
// these they invalidate; queries register their entries under them.
const (
	TagAuth      = "Auth"
	TagUser      = "User"
	TagProfile   = "Profile"
	TagArticle   = "Article"
	TagAnalytics = "Analytics"
)
