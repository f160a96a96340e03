package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nirbhaysingh/portfolio/internal/blog"
)

const goPost = `---
title: "Building with Go"
excerpt: "Notes from a small service"
image: "/images/go.png"
date: "2025-01-01"
readTime: "5 min read"
category: "Tech"
tags:
  - go
  - web
author:
  name: "Nirbhay"
  image: "/images/me.png"
---

# Building with Go

Body text.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLocalDirListReadsHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "building-with-go.mdx", goPost)
	writeFile(t, dir, "notes.txt", "ignored")

	posts, problems, err := LocalDir{Dir: dir}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("problems = %v, want none", problems)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	post := posts[0]
	if post.Slug != "building-with-go" || post.ID != "building-with-go" {
		t.Fatalf("slug/id = %q/%q, want building-with-go", post.Slug, post.ID)
	}
	if post.Title != "Building with Go" {
		t.Fatalf("title = %q", post.Title)
	}
	if post.ReadTime != "5 min read" || post.Category != "Tech" {
		t.Fatalf("readTime/category = %q/%q", post.ReadTime, post.Category)
	}
	if got := strings.Join(post.Tags, ","); got != "go,web" {
		t.Fatalf("tags = %q, want %q", got, "go,web")
	}
	if post.Author.Name != "Nirbhay" || post.Author.Image != "/images/me.png" {
		t.Fatalf("author = %+v", post.Author)
	}
	if post.IsExternal {
		t.Fatalf("local post marked external")
	}
	if post.Content != "" {
		t.Fatalf("listing loaded content %q", post.Content)
	}
}

func TestLocalDirListMissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	posts, problems, err := LocalDir{Dir: filepath.Join(t.TempDir(), "missing")}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 0 || len(problems) != 0 {
		t.Fatalf("posts=%d problems=%d, want empty", len(posts), len(problems))
	}
}

func TestLocalDirListSkipsBadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "good.md", goPost)
	writeFile(t, dir, "no-header.md", "# Just a body\n")
	writeFile(t, dir, "broken-yaml.md", "---\ntitle: [unclosed\n---\nbody\n")
	writeFile(t, dir, "empty.md", "---\ntitle: Empty\n---\n\n  \n")
	writeFile(t, dir, "Bad Name.md", goPost)

	posts, problems, err := LocalDir{Dir: dir}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "good" {
		t.Fatalf("posts = %+v, want only good", posts)
	}
	kinds := map[string]blog.ProblemKind{}
	for _, p := range problems {
		kinds[p.Slug] = p.Kind
	}
	want := map[string]blog.ProblemKind{
		"no-header":   blog.ProblemMalformed,
		"broken-yaml": blog.ProblemMalformed,
		"empty":       blog.ProblemEmptyBody,
		"Bad Name":    blog.ProblemInvalidSlug,
	}
	for slug, kind := range want {
		if kinds[slug] != kind {
			t.Fatalf("problem for %q = %q, want %q (all: %v)", slug, kinds[slug], kind, problems)
		}
	}
}

func TestLocalDirGetLoadsBody(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "building-with-go.mdx", goPost)

	post, err := LocalDir{Dir: dir}.Get(context.Background(), "building-with-go")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !strings.Contains(post.Content, "Body text.") {
		t.Fatalf("content = %q, want body", post.Content)
	}
	if strings.Contains(post.Content, "readTime") {
		t.Fatalf("content includes header: %q", post.Content)
	}
}

func TestLocalDirGetDistinguishesMissingFromMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	tests := []struct {
		name      string
		slug      string
		notFound  bool
		malformed bool
	}{
		{name: "missing file", slug: "nothing-here", notFound: true},
		{name: "unsafe slug", slug: "../etc/passwd", notFound: true},
		{name: "corrupt file", slug: "broken", malformed: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LocalDir{Dir: dir}.Get(context.Background(), tc.slug)
			if got := errors.Is(err, blog.ErrNotFound); got != tc.notFound {
				t.Fatalf("errors.Is(ErrNotFound) = %v, want %v (err=%v)", got, tc.notFound, err)
			}
			if got := blog.IsMalformed(err); got != tc.malformed {
				t.Fatalf("IsMalformed = %v, want %v (err=%v)", got, tc.malformed, err)
			}
		})
	}
}

func TestLocalDirListedPostsLookUpWithContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "one.mdx", goPost)
	writeFile(t, dir, "two.md", strings.Replace(goPost, "Building with Go", "Second", 1))
	src := LocalDir{Dir: dir}

	posts, _, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, post := range posts {
		full, err := src.Get(context.Background(), post.Slug)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", post.Slug, err)
		}
		if strings.TrimSpace(full.Content) == "" {
			t.Fatalf("Get(%q) content is empty", post.Slug)
		}
	}
}

func TestScanHeaderAcceptsTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "toml-post.md", "+++\ntitle = \"From TOML\"\ncategory = \"Life\"\n+++\nHello\n")

	posts, problems, err := LocalDir{Dir: dir}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("problems = %v", problems)
	}
	if len(posts) != 1 || posts[0].Title != "From TOML" || posts[0].Category != "Life" {
		t.Fatalf("posts = %+v", posts)
	}
}

func TestLocalDirListIgnoresMiscasedExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "hello.MDX", goPost)
	writeFile(t, dir, "other.Md", goPost)

	posts, _, err := LocalDir{Dir: dir}.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, post := range posts {
		if _, err := (LocalDir{Dir: dir}).Get(context.Background(), post.Slug); err != nil {
			t.Fatalf("listed %q but Get() error = %v", post.Slug, err)
		}
	}
	if len(posts) != 0 {
		t.Fatalf("posts = %+v, want none", posts)
	}
}

func TestLocalDirListPrefersTheFileGetOpens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "twin.md", strings.Replace(goPost, "Building with Go", "FromMD", 1))
	writeFile(t, dir, "twin.mdx", strings.Replace(goPost, "Building with Go", "FromMDX", 1))

	local := LocalDir{Dir: dir}
	posts, problems, err := local.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "FromMDX" {
		t.Fatalf("posts = %+v, want only FromMDX", posts)
	}
	full, err := local.Get(context.Background(), "twin")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if full.Title != posts[0].Title {
		t.Fatalf("Get() title = %q, listed %q", full.Title, posts[0].Title)
	}
	if len(problems) != 1 {
		t.Fatalf("problems = %v, want one collision", problems)
	}
	if problems[0].Kind != blog.ProblemSlugCollision || problems[0].Source != filepath.Join(dir, "twin.md") {
		t.Fatalf("problem = %+v, want slug-collision for twin.md", problems[0])
	}
}

func TestLocalDirPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "plain.md", goPost)
	local := LocalDir{Dir: dir}
	if got, want := local.Path("plain"), filepath.Join(dir, "plain.md"); got != want {
		t.Fatalf("Path(plain) = %q, want %q", got, want)
	}
	if got, want := local.Path("absent"), filepath.Join(dir, "absent.mdx"); got != want {
		t.Fatalf("Path(absent) = %q, want %q", got, want)
	}
}
