package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/nirbhaysingh/portfolio/internal/blog"
)

// externalRecord is one entry of the external posts file.
type externalRecord struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt"`
	Image       string      `json:"image"`
	Date        string      `json:"date"`
	ReadTime    string      `json:"readTime"`
	Category    string      `json:"category"`
	Tags        []string    `json:"tags"`
	Author      blog.Author `json:"author"`
	ExternalURL string      `json:"externalUrl"`
}

// ExternalFile reads externally hosted posts from one JSON array file.
type ExternalFile struct {
	Path string
}

var _ blog.ExternalSource = ExternalFile{}

// List returns every usable entry. A missing file yields no posts; a file
// that is not a JSON array of records is a *blog.MalformedError. Single
// entries without a usable slug or URL are skipped as problems.
func (f ExternalFile) List(ctx context.Context) ([]blog.Post, []blog.Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, &blog.MalformedError{Source: f.Path, Err: err}
	}
	var records []externalRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, &blog.MalformedError{Source: f.Path, Err: fmt.Errorf("decode external posts: %w", err)}
	}

	posts := make([]blog.Post, 0, len(records))
	var problems []blog.Problem
	for i, record := range records {
		post, err := record.post()
		if err != nil {
			problems = append(problems, blog.Problem{
				Kind:   blog.ProblemInvalidExternal,
				Source: fmt.Sprintf("%s[%d]", f.Path, i),
				Slug:   post.Slug,
				Err:    err,
			})
			continue
		}
		posts = append(posts, post)
	}
	return posts, problems, nil
}

func (r externalRecord) post() (blog.Post, error) {
	id := strings.TrimSpace(r.ID)
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		slug = id
	}
	if id == "" {
		id = slug
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	post := blog.Post{
		ID:          id,
		Slug:        slug,
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		Image:       r.Image,
		Date:        r.Date,
		ReadTime:    r.ReadTime,
		Category:    r.Category,
		Tags:        tags,
		Author:      r.Author,
		IsExternal:  true,
		ExternalURL: strings.TrimSpace(r.ExternalURL),
	}
	if !blog.ValidSlug(slug) {
		return post, fmt.Errorf("external post id %q is not a url-safe slug", slug)
	}
	if post.ExternalURL == "" {
		return post, fmt.Errorf("external post %q has no externalUrl", slug)
	}
	u, err := url.Parse(post.ExternalURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return post, fmt.Errorf("external post %q has invalid externalUrl %q", slug, post.ExternalURL)
	}
	return post, nil
}
