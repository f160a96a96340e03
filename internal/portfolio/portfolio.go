// Package portfolio loads the projects shown on the portfolio page.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// Project is one showcased piece of work.
type Project struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	DemoURL     string   `yaml:"demoUrl"`
	RepoURL     string   `yaml:"repoUrl"`
	Category    string   `yaml:"category"`
	Featured    bool     `yaml:"featured"`
}

type document struct {
	Projects []Project `yaml:"projects"`
}

// File reads projects from a YAML document with a top-level projects list.
type File struct {
	Path string
}

// List returns the projects in file order. A missing file has no projects.
func (f File) List(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read projects %s: %w", f.Path, err)
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode projects %s: %w", f.Path, err)
	}
	seen := make(map[string]struct{}, len(doc.Projects))
	for i, p := range doc.Projects {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("project %d in %s has no id", i, f.Path)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("project id %q is duplicated in %s", id, f.Path)
		}
		seen[id] = struct{}{}
		doc.Projects[i].Category = strings.ToLower(strings.TrimSpace(p.Category))
	}
	return doc.Projects, nil
}

// Filter keeps projects in category; AllCategories or an empty category keeps
// every project.
func Filter(projects []Project, category string) []Project {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if category == "" || category == AllCategories || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct project categories in first-seen order.
func Categories(projects []Project) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Featured returns up to n featured projects, topping up with the first
// remaining projects when fewer are marked.
func Featured(projects []Project, n int) []Project {
	if n <= 0 {
		return nil
	}
	out := make([]Project, 0, n)
	for _, p := range projects {
		if p.Featured && len(out) < n {
			out = append(out, p)
		}
	}
	for _, p := range projects {
		if len(out) >= n {
			break
		}
		if !p.Featured {
			out = append(out, p)
		}
	}
	return out
}
