// Package contentcheck validates blog content the way the site would serve
// it: every listed local post is loaded, parsed, and rendered.
package contentcheck

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/blog/render"
	"github.com/nirbhaysingh/portfolio/internal/blog/source"
	"github.com/nirbhaysingh/portfolio/internal/contentwatch"
	"github.com/nirbhaysingh/portfolio/internal/platform/config"
	"github.com/nirbhaysingh/portfolio/internal/platform/timeouts"
)

// Config holds the contentcheck command configuration.
type Config struct {
	ContentDir        string `env:"PORTFOLIO_CONTENT_DIR"         envDefault:"content/blog"`
	ExternalPostsFile string `env:"PORTFOLIO_EXTERNAL_POSTS_FILE" envDefault:"content/external-posts.json"`
	SiteURL           string `env:"PORTFOLIO_SITE_URL"            envDefault:"http://localhost:8080"`
	Watch             bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "directory of local post documents")
	fs.StringVar(&cfg.ExternalPostsFile, "external-posts", cfg.ExternalPostsFile, "JSON file of external posts")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "public base URL used to classify links")
	fs.BoolVar(&cfg.Watch, "watch", false, "re-check whenever content changes")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Report summarizes one content check.
type Report struct {
	Posts    int
	Problems []blog.Problem
}

type collector struct {
	mu       sync.Mutex
	problems []blog.Problem
}

func (c *collector) Report(_ context.Context, problem blog.Problem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.problems = append(c.problems, problem)
}

// Check lists every post, then loads and renders each local one. Problems are
// written to out, one per line, followed by a summary line.
func Check(ctx context.Context, cfg Config, out io.Writer) (Report, error) {
	problems := &collector{}
	local := source.LocalDir{Dir: cfg.ContentDir}
	catalog := blog.NewCatalog(
		local,
		source.ExternalFile{Path: cfg.ExternalPostsFile},
		problems,
	)

	listing, err := catalog.All(ctx)
	if err != nil {
		return Report{}, err
	}
	opts := render.Options{SiteURL: cfg.SiteURL}
	for _, post := range listing.Posts {
		if post.IsExternal {
			continue
		}
		path := local.Path(post.Slug)
		full, err := catalog.Lookup(ctx, post.Slug)
		if err != nil {
			var malformed *blog.MalformedError
			if errors.As(err, &malformed) && malformed.Source != "" {
				path = malformed.Source
			}
			problems.Report(ctx, blog.Problem{Kind: blog.ProblemMalformed, Source: path, Slug: post.Slug, Err: err})
			continue
		}
		if _, err := render.HTML(full.Content, opts); err != nil {
			problems.Report(ctx, blog.Problem{Kind: blog.ProblemUnrenderable, Source: path, Slug: post.Slug, Err: err})
		}
	}

	report := Report{Posts: len(listing.Posts), Problems: problems.problems}
	for _, problem := range report.Problems {
		fmt.Fprintf(out, "problem %s\n", problem)
	}
	fmt.Fprintf(out, "checked %d posts, %d problems\n", report.Posts, len(report.Problems))
	return report, nil
}

// Run checks content once and returns the number of problems found. With
// Watch set it keeps re-checking on changes until ctx is done and returns
// the count from the last check.
func Run(ctx context.Context, cfg Config, out io.Writer) (int, error) {
	report, err := Check(ctx, cfg, out)
	if err != nil {
		return 0, fmt.Errorf("check content: %w", err)
	}
	if !cfg.Watch {
		return len(report.Problems), nil
	}

	last := len(report.Problems)
	fmt.Fprintf(out, "watching %s\n", cfg.ContentDir)
	err = contentwatch.Watch(ctx, []string{cfg.ContentDir, cfg.ExternalPostsFile}, timeouts.ContentDebounce, func() {
		report, err := Check(ctx, cfg, out)
		if err != nil {
			fmt.Fprintf(out, "check failed: %v\n", err)
			return
		}
		last = len(report.Problems)
	})
	if err != nil {
		return last, fmt.Errorf("watch content: %w", err)
	}
	return last, nil
}
