// Package source reads blog posts from the content directory and the
// external posts file.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/nirbhaysingh/portfolio/internal/blog"
)

// Extensions lists the post document extensions in lookup preference order.
var Extensions = []string{".mdx", ".md"}

var errNoHeader = errors.New("missing front matter header")
var errEmptyBody = errors.New("post body is empty")

// frontMatter is the metadata header of a local post.
type frontMatter struct {
	Title    string      `yaml:"title" toml:"title"`
	Excerpt  string      `yaml:"excerpt" toml:"excerpt"`
	Image    string      `yaml:"image" toml:"image"`
	Date     string      `yaml:"date" toml:"date"`
	ReadTime string      `yaml:"readTime" toml:"readTime"`
	Category string      `yaml:"category" toml:"category"`
	Tags     []string    `yaml:"tags" toml:"tags"`
	Author   blog.Author `yaml:"author" toml:"author"`
}

func (m frontMatter) post(slug string) blog.Post {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return blog.Post{
		ID:       slug,
		Slug:     slug,
		Title:    m.Title,
		Excerpt:  m.Excerpt,
		Image:    m.Image,
		Date:     m.Date,
		ReadTime: m.ReadTime,
		Category: m.Category,
		Tags:     tags,
		Author:   m.Author,
	}
}

// LocalDir reads one document per post from a directory. The file name
// without extension is the post slug.
type LocalDir struct {
	Dir string
}

var _ blog.LocalSource = LocalDir{}

// List reads the header of every post document. Files that cannot be used
// are skipped and returned as problems. A missing directory yields no posts.
func (d LocalDir) List(ctx context.Context) ([]blog.Post, []blog.Problem, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read content dir %s: %w", d.Dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	// preferred holds, per slug, the file Get would open.
	preferred := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		slug, ok := slugFromName(entry.Name())
		if !ok {
			continue
		}
		if current, ok := preferred[slug]; !ok || extRank(entry.Name()) < extRank(current) {
			preferred[slug] = entry.Name()
		}
	}

	var posts []blog.Post
	var problems []blog.Problem
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if entry.IsDir() {
			continue
		}
		slug, ok := slugFromName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(d.Dir, entry.Name())
		if keep := preferred[slug]; keep != entry.Name() {
			problems = append(problems, blog.Problem{
				Kind:   blog.ProblemSlugCollision,
				Source: path,
				Slug:   slug,
				Err:    fmt.Errorf("slug %q is already used by %s", slug, keep),
			})
			continue
		}
		if !blog.ValidSlug(slug) {
			problems = append(problems, blog.Problem{
				Kind:   blog.ProblemInvalidSlug,
				Source: path,
				Slug:   slug,
				Err:    fmt.Errorf("file name %q is not a url-safe slug", entry.Name()),
			})
			continue
		}
		meta, err := readHeader(path)
		if err != nil {
			kind := blog.ProblemMalformed
			if errors.Is(err, errEmptyBody) {
				kind = blog.ProblemEmptyBody
			}
			problems = append(problems, blog.Problem{Kind: kind, Source: path, Slug: slug, Err: err})
			continue
		}
		posts = append(posts, meta.post(slug))
	}
	return posts, problems, nil
}

// Get reads one post in full. A file that exists but cannot be parsed is a
// *blog.MalformedError, never blog.ErrNotFound.
func (d LocalDir) Get(ctx context.Context, slug string) (blog.Post, error) {
	if err := ctx.Err(); err != nil {
		return blog.Post{}, err
	}
	if !blog.ValidSlug(slug) {
		return blog.Post{}, blog.ErrNotFound
	}
	for _, ext := range Extensions {
		path := filepath.Join(d.Dir, slug+ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return blog.Post{}, &blog.MalformedError{Source: path, Err: err}
		}
		var meta frontMatter
		body, err := frontmatter.MustParse(bytes.NewReader(raw), &meta)
		if err != nil {
			return blog.Post{}, &blog.MalformedError{Source: path, Err: headerError(err)}
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return blog.Post{}, &blog.MalformedError{Source: path, Err: errEmptyBody}
		}
		post := meta.post(slug)
		post.Content = string(body)
		return post, nil
	}
	return blog.Post{}, blog.ErrNotFound
}

// Path returns the file Get opens for slug. When no file exists it returns
// the path of the preferred extension.
func (d LocalDir) Path(slug string) string {
	for _, ext := range Extensions {
		path := filepath.Join(d.Dir, slug+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(d.Dir, slug+Extensions[0])
}

// slugFromName matches extensions exactly, as Get opens slug+ext on
// case-sensitive file systems.
func slugFromName(name string) (string, bool) {
	if extRank(name) < 0 {
		return "", false
	}
	return strings.TrimSuffix(name, filepath.Ext(name)), true
}

func extRank(name string) int {
	ext := filepath.Ext(name)
	for i, known := range Extensions {
		if ext == known {
			return i
		}
	}
	return -1
}

// readHeader decodes the front matter of path without reading the body past
// its first non-blank byte.
func readHeader(path string) (frontMatter, error) {
	f, err := os.Open(path)
	if err != nil {
		return frontMatter{}, err
	}
	defer f.Close()

	header, err := scanHeader(bufio.NewReader(f))
	if err != nil {
		return frontMatter{}, err
	}
	var meta frontMatter
	if _, err := frontmatter.MustParse(bytes.NewReader(header), &meta); err != nil {
		return frontMatter{}, headerError(err)
	}
	return meta, nil
}

// scanHeader returns the delimited header block, delimiters included, and
// checks that some body text follows it.
func scanHeader(r *bufio.Reader) ([]byte, error) {
	first, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	delim := strings.TrimSpace(strings.TrimPrefix(first, "\ufeff"))
	if delim != "---" && delim != "+++" {
		return nil, errNoHeader
	}

	var header bytes.Buffer
	header.WriteString(delim + "\n")
	for {
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) == delim {
			header.WriteString(delim + "\n")
			break
		}
		header.WriteString(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unterminated front matter header")
			}
			return nil, err
		}
	}

	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errEmptyBody
			}
			return nil, err
		}
		if !isSpace(b) {
			return header.Bytes(), nil
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func headerError(err error) error {
	if errors.Is(err, frontmatter.ErrNotFound) {
		return errNoHeader
	}
	return err
}
