package blog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps posts whose title or excerpt contains query, ignoring case,
// and whose category matches. AllCategories matches every category. The
// input order is preserved.
func Filter(posts []Post, query, category string) []Post {
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if category != AllCategories && post.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(post.Title), needle) &&
			!strings.Contains(fold.String(post.Excerpt), needle) {
			continue
		}
		out = append(out, post)
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	var out []string
	for _, post := range posts {
		if post.Category == "" {
			continue
		}
		if _, ok := seen[post.Category]; ok {
			continue
		}
		seen[post.Category] = struct{}{}
		out = append(out, post.Category)
	}
	return out
}

// Latest returns at most n posts from the front of an already sorted listing.
func Latest(posts []Post, n int) []Post {
	if n <= 0 {
		return nil
	}
	if len(posts) < n {
		n = len(posts)
	}
	out := make([]Post, n)
	copy(out, posts[:n])
	return out
}
