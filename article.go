package newsgenie

import "context"

// Categories accepted by NewsService.TopHeadlines.
var Categories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// ArticleSource identifies the publisher of an article.
type ArticleSource struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Article is a headline as reported by the news provider.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage,omitempty"`
	PublishedAt string        `json:"publishedAt"` // ISO 8601 as sent by the provider
	Content     string        `json:"content,omitempty"`
}

// ArticleList is a page of headlines.
type ArticleList struct {
	Status       string     `json:"status"`
	TotalResults int        `json:"totalResults"`
	Articles     []*Article `json:"articles"`
}

// NewsService lists headlines from a third-party news provider.
type NewsService interface {
	// TopHeadlines returns current English-language headlines.
	// An empty category returns headlines across all categories.
	TopHeadlines(ctx context.Context, category string) (*ArticleList, error)

	// Search returns articles matching the query.
	// Returns EINVALID if the query is empty.
	Search(ctx context.Context, query string) (*ArticleList, error)
}

// ValidCategory reports whether category is empty or one of Categories.
func ValidCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
