package blog

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrNotFound reports that no local post exists for a slug.
var ErrNotFound = errors.New("post not found")

// MalformedError reports a content file that exists but cannot be used.
type MalformedError struct {
	Source string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed content %s", e.Source)
	}
	return fmt.Sprintf("malformed content %s: %v", e.Source, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is, or wraps, a MalformedError.
func IsMalformed(err error) bool {
	var malformed *MalformedError
	return errors.As(err, &malformed)
}

// ProblemKind classifies a skipped content entry.
type ProblemKind string

const (
	ProblemMalformed           ProblemKind = "malformed"
	ProblemEmptyBody           ProblemKind = "empty-body"
	ProblemInvalidSlug         ProblemKind = "invalid-slug"
	ProblemInvalidExternal     ProblemKind = "invalid-external"
	ProblemExternalUnavailable ProblemKind = "external-unavailable"
	ProblemSlugCollision       ProblemKind = "slug-collision"

	// ProblemUnrenderable is reported when a post page fails to render.
	ProblemUnrenderable ProblemKind = "unrenderable"
)

// Problem describes one content entry left out of a listing.
type Problem struct {
	Kind   ProblemKind
	Source string
	Slug   string
	Err    error
}

func (p Problem) String() string {
	msg := fmt.Sprintf("kind=%s source=%s", p.Kind, p.Source)
	if p.Slug != "" {
		msg += " slug=" + p.Slug
	}
	if p.Err != nil {
		msg += fmt.Sprintf(" err=%q", p.Err.Error())
	}
	return msg
}

// Reporter receives content problems found while listing or rendering.
type Reporter interface {
	Report(ctx context.Context, problem Problem)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, problem Problem)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, problem Problem) {
	if f != nil {
		f(ctx, problem)
	}
}

// LogReporter writes problems to a standard logger.
func LogReporter(logger *log.Logger) Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return ReporterFunc(func(_ context.Context, problem Problem) {
		logger.Printf("content problem %s", problem)
	})
}

// MultiReporter fans problems out to every non-nil reporter.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, problem Problem) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ctx, problem)
			}
		}
	})
}
