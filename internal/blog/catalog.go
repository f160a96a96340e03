package blog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/nirbhaysingh/portfolio/internal/blog")

// LocalSource lists and reads posts authored on this site.
type LocalSource interface {
	List(ctx context.Context) ([]Post, []Problem, error)
	Get(ctx context.Context, slug string) (Post, error)
}

// ExternalSource lists posts hosted elsewhere.
type ExternalSource interface {
	List(ctx context.Context) ([]Post, []Problem, error)
}

// Catalog merges local and external posts. It keeps no state between calls;
// every call reads the sources again.
type Catalog struct {
	local    LocalSource
	external ExternalSource
	reporter Reporter
}

// NewCatalog builds a catalog. A nil source contributes no posts and a nil
// reporter drops problems.
func NewCatalog(local LocalSource, external ExternalSource, reporter Reporter) *Catalog {
	if reporter == nil {
		reporter = ReporterFunc(nil)
	}
	return &Catalog{local: local, external: external, reporter: reporter}
}

// All returns every post sorted by date, newest first.
func (c *Catalog) All(ctx context.Context) (Listing, error) {
	ctx, span := tracer.Start(ctx, "blog.Catalog.All")
	defer span.End()

	var listing Listing
	var posts []Post

	if c.local != nil {
		local, problems, err := c.local.List(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "list local posts")
			return Listing{}, fmt.Errorf("list local posts: %w", err)
		}
		c.report(ctx, problems)
		posts = append(posts, local...)
	}

	if c.external != nil {
		external, problems, err := c.external.List(ctx)
		switch {
		case err == nil:
			c.report(ctx, problems)
			posts = append(posts, external...)
		case IsMalformed(err):
			listing.ExternalUnavailable = true
			var malformed *MalformedError
			errors.As(err, &malformed)
			c.reporter.Report(ctx, Problem{Kind: ProblemExternalUnavailable, Source: malformed.Source, Err: malformed.Err})
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, "list external posts")
			return Listing{}, fmt.Errorf("list external posts: %w", err)
		}
	}

	listing.Posts = c.dedupe(ctx, posts)
	SortByDate(listing.Posts)
	span.SetAttributes(
		attribute.Int("blog.posts", len(listing.Posts)),
		attribute.Bool("blog.external_unavailable", listing.ExternalUnavailable),
	)
	return listing, nil
}

// Lookup returns the full local post for slug, body included. External posts
// are never found here.
func (c *Catalog) Lookup(ctx context.Context, slug string) (Post, error) {
	ctx, span := tracer.Start(ctx, "blog.Catalog.Lookup")
	defer span.End()
	span.SetAttributes(attribute.String("blog.slug", slug))

	if c.local == nil || !ValidSlug(slug) {
		return Post{}, ErrNotFound
	}
	post, err := c.local.Get(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "lookup post")
		}
		return Post{}, err
	}
	return post, nil
}

// Resolve finds slug across both sources. External posts resolve to a
// redirect; local posts are looked up in full.
func (c *Catalog) Resolve(ctx context.Context, slug string) (Resolution, error) {
	listing, err := c.All(ctx)
	if err != nil {
		return Resolution{}, err
	}
	for _, post := range listing.Posts {
		if post.Slug != slug {
			continue
		}
		if post.IsExternal {
			return Resolution{Redirect: post.ExternalURL}, nil
		}
		full, err := c.Lookup(ctx, slug)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Post: full}, nil
	}
	return Resolution{}, ErrNotFound
}

func (c *Catalog) report(ctx context.Context, problems []Problem) {
	for _, problem := range problems {
		c.reporter.Report(ctx, problem)
	}
}

// dedupe keeps the first post for each slug. Local posts come first, so a
// local post always wins over an external post with the same slug.
func (c *Catalog) dedupe(ctx context.Context, posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.Slug]; ok {
			c.reporter.Report(ctx, Problem{
				Kind:   ProblemSlugCollision,
				Source: sourceLabel(post),
				Slug:   post.Slug,
				Err:    fmt.Errorf("slug %q is already used", post.Slug),
			})
			continue
		}
		seen[post.Slug] = struct{}{}
		out = append(out, post)
	}
	return out
}

func sourceLabel(post Post) string {
	if post.IsExternal {
		return post.ExternalURL
	}
	return post.Slug
}

// SortByDate orders posts newest first. Equal dates keep their relative
// order and undated posts go last.
func SortByDate(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.Time().Compare(a.Time())
	})
}
