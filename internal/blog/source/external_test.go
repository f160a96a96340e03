package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nirbhaysingh/portfolio/internal/blog"
)

func TestExternalFileList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "external-posts.json", `[
  {
    "id": "scaling-postgres",
    "title": "Scaling Postgres",
    "excerpt": "Lessons from production",
    "date": "2025-06-01",
    "category": "Life",
    "author": {"name": "Nirbhay", "image": "/me.png"},
    "isExternal": true,
    "externalUrl": "https://medium.com/@me/scaling-postgres"
  },
  {
    "id": "no-url",
    "title": "Missing link",
    "isExternal": true
  }
]`)

	posts, problems, err := ExternalFile{Path: path}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	post := posts[0]
	if !post.IsExternal || post.ExternalURL != "https://medium.com/@me/scaling-postgres" {
		t.Fatalf("post = %+v, want external with url", post)
	}
	if post.Slug != "scaling-postgres" || post.ID != "scaling-postgres" {
		t.Fatalf("slug/id = %q/%q", post.Slug, post.ID)
	}
	if post.Tags == nil {
		t.Fatalf("tags = nil, want empty slice")
	}
	if len(problems) != 1 || problems[0].Kind != blog.ProblemInvalidExternal || problems[0].Slug != "no-url" {
		t.Fatalf("problems = %v, want one invalid-external for no-url", problems)
	}
}

func TestExternalFileMissingIsEmpty(t *testing.T) {
	t.Parallel()

	posts, problems, err := ExternalFile{Path: filepath.Join(t.TempDir(), "nope.json")}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 0 || len(problems) != 0 {
		t.Fatalf("posts=%d problems=%d, want empty", len(posts), len(problems))
	}
}

func TestExternalFileMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `[{"id": "a"`},
		{name: "object instead of array", content: `{"id": "a"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "external-posts.json", tc.content)
			_, _, err := ExternalFile{Path: path}.List(context.Background())
			if !blog.IsMalformed(err) {
				t.Fatalf("err = %v, want malformed", err)
			}
		})
	}
}
