package models

// NewsItem is the single most recent news article kept per ticker.
type NewsItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	OfficeID  string `json:"officeId"`
	ArticleID string `json:"articleId"`
}
