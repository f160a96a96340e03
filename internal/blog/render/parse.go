package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// customTagPattern finds the next component tag. Components are written with
// a leading capital, which plain HTML tags never use.
var customTagPattern = regexp.MustCompile(`</?[A-Z][A-Za-z0-9]*[\s/>]`)

// Parse converts a post body into a Document. Unknown component tags become
// KindUnknown blocks; tags that do not nest properly are a *SyntaxError.
func Parse(content []byte) (Document, error) {
	blocks, err := convert(content)
	if err != nil {
		return Document{}, err
	}
	return Document{Blocks: blocks}, nil
}

func convert(source []byte) ([]Block, error) {
	c := converter{source: source}
	root := markdown.Parser().Parse(text.NewReader(source))
	return c.blocks(root)
}

type converter struct {
	source []byte
	// err is the first inline component tag that cannot be placed.
	err error
	// inlineUnknown collects unknown component tags met inside text so they
	// surface as unknown blocks after the enclosing block.
	inlineUnknown []Block
}

type tagToken struct {
	name        string
	attrs       map[string]string
	closing     bool
	selfClosing bool
	rawLen      int
}

type frame struct {
	tag    tagToken
	blocks []Block
}

type frameStack []*frame

func (s *frameStack) top() *frame {
	return (*s)[len(*s)-1]
}

func (s *frameStack) push(tag tagToken) {
	*s = append(*s, &frame{tag: tag})
}

func (s *frameStack) pop(name string) error {
	if len(*s) < 2 {
		return &SyntaxError{Msg: fmt.Sprintf("unexpected closing tag </%s>", name)}
	}
	open := s.top()
	if open.tag.name != name {
		return &SyntaxError{Msg: fmt.Sprintf("closing tag </%s> does not match <%s>", name, open.tag.name)}
	}
	*s = (*s)[:len(*s)-1]
	s.top().blocks = append(s.top().blocks, customBlock(open.tag, open.blocks))
	return nil
}

func (c *converter) blocks(parent ast.Node) ([]Block, error) {
	stack := frameStack{&frame{}}
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if hb, ok := n.(*ast.HTMLBlock); ok {
			if err := c.consumeHTML(c.htmlBlockText(hb), &stack); err != nil {
				return nil, err
			}
			continue
		}
		b, err := c.block(n)
		if err != nil {
			return nil, err
		}
		if c.err != nil {
			return nil, c.err
		}
		stack.top().blocks = append(stack.top().blocks, b)
		stack.top().blocks = append(stack.top().blocks, c.inlineUnknown...)
		c.inlineUnknown = nil
	}
	if len(stack) > 1 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("unclosed tag <%s>", stack.top().tag.name)}
	}
	return stack.top().blocks, nil
}

// consumeHTML splits an html block into component tags, raw html, and
// markdown text between them.
func (c *converter) consumeHTML(raw string, stack *frameStack) error {
	rest := raw
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if rest == "" {
			return nil
		}
		tag, ok := leadingCustomTag(rest)
		if !ok {
			end := len(rest)
			if loc := customTagPattern.FindStringIndex(rest); loc != nil && loc[0] > 0 {
				end = loc[0]
			}
			segment := rest[:end]
			rest = rest[end:]
			if strings.HasPrefix(segment, "<") {
				stack.top().blocks = append(stack.top().blocks, Block{Kind: KindHTML, HTML: strings.TrimSpace(segment)})
				continue
			}
			children, err := convert([]byte(segment))
			if err != nil {
				return err
			}
			stack.top().blocks = append(stack.top().blocks, children...)
			continue
		}

		rest = rest[tag.rawLen:]
		switch {
		case tag.closing:
			if err := stack.pop(tag.name); err != nil {
				return err
			}
		case tag.selfClosing:
			stack.top().blocks = append(stack.top().blocks, customBlock(tag, nil))
		default:
			end := matchingClose(rest, tag.name)
			if end < 0 {
				stack.push(tag)
				continue
			}
			children, err := convert([]byte(rest[:end]))
			if err != nil {
				return err
			}
			stack.top().blocks = append(stack.top().blocks, customBlock(tag, children))
			rest = rest[end+len("</"+tag.name+">"):]
		}
	}
}

// leadingCustomTag tokenizes the tag at the start of s when it is a component
// tag.
func leadingCustomTag(s string) (tagToken, bool) {
	name := authoredName(s)
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return tagToken{}, false
	}
	z := html.NewTokenizer(strings.NewReader(s))
	tt := z.Next()
	rawLen := len(z.Raw())
	switch tt {
	case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
	default:
		return tagToken{}, false
	}
	tok := z.Token()
	attrs := make(map[string]string, len(tok.Attr))
	for _, attr := range tok.Attr {
		attrs[attr.Key] = attr.Val
	}
	return tagToken{
		name:        name,
		attrs:       attrs,
		closing:     tt == html.EndTagToken,
		selfClosing: tt == html.SelfClosingTagToken,
		rawLen:      rawLen,
	}, true
}

// authoredName returns the tag name at the start of s with its original case.
func authoredName(s string) string {
	if !strings.HasPrefix(s, "<") {
		return ""
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "<"), "/")
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			end++
			continue
		}
		break
	}
	return s[:end]
}

// matchingClose returns the index of the close tag for name in s, skipping
// nested tags of the same name, or -1.
func matchingClose(s, name string) int {
	openTag := "<" + name
	closeTag := "</" + name + ">"
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], closeTag):
			if depth == 0 {
				return i
			}
			depth--
		case strings.HasPrefix(s[i:], openTag) && isTagBoundary(s, i+len(openTag)):
			depth++
		}
	}
	return -1
}

func isTagBoundary(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	switch s[i] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

func customBlock(tag tagToken, children []Block) Block {
	kind, ok := customKinds[tag.name]
	if !ok {
		kind = KindUnknown
	}
	return Block{
		Kind:     kind,
		Name:     tag.name,
		Title:    tag.attrs["title"],
		Children: children,
	}
}

func (c *converter) htmlBlockText(n *ast.HTMLBlock) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	if n.HasClosure() {
		buf.Write(n.ClosureLine.Value(c.source))
	}
	return buf.String()
}

func (c *converter) block(n ast.Node) (Block, error) {
	switch n := n.(type) {
	case *ast.Heading:
		return Block{Kind: KindHeading, Level: n.Level, ID: headingID(n), Inlines: c.inlines(n)}, nil
	case *ast.Paragraph:
		return Block{Kind: KindParagraph, Inlines: c.inlines(n)}, nil
	case *ast.TextBlock:
		return Block{Kind: KindParagraph, Tight: true, Inlines: c.inlines(n)}, nil
	case *ast.List:
		list := Block{Kind: KindList, Ordered: n.IsOrdered(), Start: n.Start}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			children, err := c.blocks(item)
			if err != nil {
				return Block{}, err
			}
			list.Children = append(list.Children, Block{Kind: KindListItem, Children: children})
		}
		return list, nil
	case *ast.Blockquote:
		children, err := c.blocks(n)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: KindQuote, Children: children}, nil
	case *ast.FencedCodeBlock:
		return Block{Kind: KindCode, Language: ClassifyLanguage(string(n.Language(c.source))), Text: c.lines(n)}, nil
	case *ast.CodeBlock:
		return Block{Kind: KindCode, Language: ClassifyLanguage(""), Text: c.lines(n)}, nil
	case *ast.ThematicBreak:
		return Block{Kind: KindRule}, nil
	default:
		return Block{Kind: KindUnknown, Name: n.Kind().String()}, nil
	}
}

func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	return buf.String()
}

func headingID(n *ast.Heading) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func (c *converter) inlines(parent ast.Node) []Inline {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			out = append(out, Inline{Kind: InlineText, Text: string(n.Segment.Value(c.source))})
			if n.HardLineBreak() {
				out = append(out, Inline{Kind: InlineBreak})
			} else if n.SoftLineBreak() {
				out = append(out, Inline{Kind: InlineText, Text: "\n"})
			}
		case *ast.String:
			out = append(out, Inline{Kind: InlineText, Text: string(n.Value)})
		case *ast.CodeSpan:
			out = append(out, Inline{Kind: InlineCode, Text: c.plainText(n)})
		case *ast.Emphasis:
			kind := InlineEmphasis
			if n.Level >= 2 {
				kind = InlineStrong
			}
			out = append(out, Inline{Kind: kind, Children: c.inlines(n)})
		case *extast.Strikethrough:
			out = append(out, Inline{Kind: InlineDelete, Children: c.inlines(n)})
		case *ast.Link:
			out = append(out, Inline{Kind: InlineLink, Href: string(n.Destination), Title: string(n.Title), Children: c.inlines(n)})
		case *ast.AutoLink:
			href := string(n.URL(c.source))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
				href = "mailto:" + href
			}
			out = append(out, Inline{Kind: InlineLink, Href: href, Children: []Inline{{Kind: InlineText, Text: string(n.Label(c.source))}}})
		case *ast.Image:
			out = append(out, Inline{Kind: InlineImage, Href: string(n.Destination), Title: string(n.Title), Text: c.plainText(n)})
		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				buf.Write(seg.Value(c.source))
			}
			if c.inlineComponent(buf.String()) {
				continue
			}
			out = append(out, Inline{Kind: InlineHTML, Text: buf.String()})
		default:
			out = append(out, c.inlines(n)...)
		}
	}
	return out
}

// inlineComponent reports whether raw is a component tag written inside
// text. Known components must open on their own line; unknown ones are
// recorded so rendering fails on them.
func (c *converter) inlineComponent(raw string) bool {
	tag, ok := leadingCustomTag(strings.TrimSpace(raw))
	if !ok {
		return false
	}
	if _, known := customKinds[tag.name]; known {
		if c.err == nil {
			c.err = &SyntaxError{Msg: fmt.Sprintf("component <%s> must start on its own line", tag.name)}
		}
		return true
	}
	if !tag.closing {
		c.inlineUnknown = append(c.inlineUnknown, Block{Kind: KindUnknown, Name: tag.name})
	}
	return true
}

func (c *converter) plainText(n ast.Node) string {
	var buf strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			buf.Write(child.Segment.Value(c.source))
			if child.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(child.Value)
		default:
			buf.WriteString(c.plainText(child))
		}
	}
	return buf.String()
}
