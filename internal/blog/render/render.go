package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// Options tunes rendering for the site serving the post.
type Options struct {
	// SiteURL is the public base URL. Absolute links to its host count as
	// same-site links.
	SiteURL string
}

var sanitizer = bluemonday.UGCPolicy()

// Render writes the HTML for doc. Nothing is written when rendering fails.
func Render(w io.Writer, doc Document, opts Options) error {
	var buf bytes.Buffer
	r := renderer{buf: &buf, host: siteHost(opts.SiteURL)}
	if err := r.blocks(doc.Blocks); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// HTML parses and renders a post body in one step.
func HTML(content string, opts Options) (string, error) {
	doc, err := Parse([]byte(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component adapts the document for page composition.
func (d Document) Component(opts Options) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return Render(w, d, opts)
	})
}

type renderer struct {
	buf  *bytes.Buffer
	host string
}

func siteHost(siteURL string) string {
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func (r renderer) blocks(blocks []Block) error {
	for _, b := range blocks {
		if err := r.block(b); err != nil {
			return err
		}
	}
	return nil
}

func (r renderer) block(b Block) error {
	switch b.Kind {
	case KindHeading:
		level := min(max(b.Level, 1), 6)
		fmt.Fprintf(r.buf, `<h%d`, level)
		if b.ID != "" {
			fmt.Fprintf(r.buf, ` id="%s"`, html.EscapeString(b.ID))
		}
		fmt.Fprintf(r.buf, ` class="post-heading post-h%d">`, level)
		r.inlines(b.Inlines)
		fmt.Fprintf(r.buf, "</h%d>\n", level)
	case KindParagraph:
		if b.Tight {
			r.inlines(b.Inlines)
			return nil
		}
		r.buf.WriteString(`<p class="post-paragraph">`)
		r.inlines(b.Inlines)
		r.buf.WriteString("</p>\n")
	case KindList:
		tag := "ul"
		if b.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(r.buf, `<%s class="post-list"`, tag)
		if b.Ordered && b.Start > 1 {
			fmt.Fprintf(r.buf, ` start="%d"`, b.Start)
		}
		r.buf.WriteString(">\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		fmt.Fprintf(r.buf, "</%s>\n", tag)
	case KindListItem:
		r.buf.WriteString("<li>")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</li>\n")
	case KindQuote:
		r.buf.WriteString(`<blockquote class="post-quote">` + "\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</blockquote>\n")
	case KindCode:
		lang := html.EscapeString(b.Language)
		if lang == "" {
			lang = plaintext
		}
		fmt.Fprintf(r.buf, `<pre class="code-block" data-language="%s"><code class="language-%s">`, lang, lang)
		r.buf.WriteString(html.EscapeString(b.Text))
		r.buf.WriteString("</code></pre>\n")
	case KindRule:
		r.buf.WriteString(`<hr class="post-rule">` + "\n")
	case KindHTML:
		r.buf.WriteString(sanitizer.Sanitize(b.HTML))
		r.buf.WriteString("\n")
	case KindFeature:
		r.buf.WriteString(`<div class="feature-card">`)
		if b.Title != "" {
			fmt.Fprintf(r.buf, `<h3 class="feature-card-title">%s</h3>`, html.EscapeString(b.Title))
		}
		r.buf.WriteString(`<div class="feature-card-body">` + "\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</div></div>\n")
	case KindTip:
		r.buf.WriteString(`<aside class="tip-card" role="note">`)
		if b.Title != "" {
			fmt.Fprintf(r.buf, `<p class="tip-card-title">%s</p>`, html.EscapeString(b.Title))
		}
		r.buf.WriteString("\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</aside>\n")
	case KindGrid:
		r.buf.WriteString(`<div class="grid-cards">` + "\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</div>\n")
	case KindGridCell:
		r.buf.WriteString(`<div class="grid-card">`)
		if b.Title != "" {
			fmt.Fprintf(r.buf, `<h4 class="grid-card-title">%s</h4>`, html.EscapeString(b.Title))
		}
		r.buf.WriteString("\n")
		if err := r.blocks(b.Children); err != nil {
			return err
		}
		r.buf.WriteString("</div>\n")
	default:
		name := b.Name
		if name == "" {
			name = b.Kind.String()
		}
		return &UnknownBlockError{Name: name}
	}
	return nil
}

func (r renderer) inlines(inlines []Inline) {
	for _, in := range inlines {
		switch in.Kind {
		case InlineStrong:
			r.wrap("strong", in.Children)
		case InlineEmphasis:
			r.wrap("em", in.Children)
		case InlineDelete:
			r.wrap("del", in.Children)
		case InlineCode:
			r.buf.WriteString(`<code class="inline-code">`)
			r.buf.WriteString(html.EscapeString(in.Text))
			r.buf.WriteString("</code>")
		case InlineLink:
			r.link(in)
		case InlineImage:
			r.image(in)
		case InlineBreak:
			r.buf.WriteString("<br>\n")
		case InlineHTML:
			r.buf.WriteString(sanitizer.Sanitize(in.Text))
		default:
			r.buf.WriteString(html.EscapeString(in.Text))
		}
	}
}

func (r renderer) wrap(tag string, children []Inline) {
	fmt.Fprintf(r.buf, "<%s>", tag)
	r.inlines(children)
	fmt.Fprintf(r.buf, "</%s>", tag)
}

func (r renderer) link(in Inline) {
	href := safeURL(in.Href)
	fmt.Fprintf(r.buf, `<a href="%s"`, html.EscapeString(href))
	if in.Title != "" {
		fmt.Fprintf(r.buf, ` title="%s"`, html.EscapeString(in.Title))
	}
	if r.isInternal(href) {
		r.buf.WriteString(` class="post-link" data-nav="internal">`)
	} else {
		r.buf.WriteString(` class="post-link" target="_blank" rel="noopener noreferrer" data-nav="external">`)
	}
	r.inlines(in.Children)
	r.buf.WriteString("</a>")
}

func (r renderer) image(in Inline) {
	fmt.Fprintf(r.buf, `<img src="%s" alt="%s"`, html.EscapeString(safeURL(in.Href)), html.EscapeString(in.Text))
	if in.Title != "" {
		fmt.Fprintf(r.buf, ` title="%s"`, html.EscapeString(in.Title))
	}
	r.buf.WriteString(` width="800" height="450" loading="lazy" decoding="async" class="post-image">`)
}

func (r renderer) isInternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		u, err := url.Parse("https:" + href)
		return err == nil && r.host != "" && strings.EqualFold(u.Hostname(), r.host)
	}
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return true
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return true
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return r.host != "" && strings.EqualFold(u.Hostname(), r.host)
}

// safeURL drops destinations with schemes a browser could execute.
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return raw
	default:
		return "#"
	}
}
