// Package render turns post bodies into HTML through a closed set of block
// and inline kinds.
package render

// Kind identifies a block variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindQuote
	KindCode
	KindRule
	KindHTML
	KindFeature
	KindTip
	KindGrid
	KindGridCell
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindHeading:   "heading",
	KindParagraph: "paragraph",
	KindList:      "list",
	KindListItem:  "list-item",
	KindQuote:     "quote",
	KindCode:      "code",
	KindRule:      "rule",
	KindHTML:      "html",
	KindFeature:   "feature-callout",
	KindTip:       "tip-callout",
	KindGrid:      "grid",
	KindGridCell:  "grid-cell",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// customKinds maps authored component tags to block kinds.
var customKinds = map[string]Kind{
	"FeatureCard": KindFeature,
	"TipCard":     KindTip,
	"GridCards":   KindGrid,
	"Grid":        KindGrid,
	"GridCard":    KindGridCell,
}

// Block is one node of a parsed post body. Which fields are set depends on
// Kind.
type Block struct {
	Kind Kind
	// Name is the authored tag of custom blocks, or the markdown node kind
	// of an unsupported node.
	Name string

	Level int    // heading
	ID    string // heading anchor

	Ordered bool // list
	Start   int  // list

	Language string // code
	Text     string // code

	Title string // callouts and grid cells

	// Tight paragraphs come from tight list items and render without <p>.
	Tight bool

	HTML     string // raw html
	Inlines  []Inline
	Children []Block
}

// InlineKind identifies an inline variant.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmphasis
	InlineDelete
	InlineCode
	InlineLink
	InlineImage
	InlineBreak
	InlineHTML
)

// Inline is a span inside a heading or paragraph.
type Inline struct {
	Kind     InlineKind
	Text     string // text, code, raw html, image alt
	Href     string // link target or image source
	Title    string
	Children []Inline
}

// Document is a parsed post body.
type Document struct {
	Blocks []Block
}

// Unknown returns the names of every unknown block in document order.
func (d Document) Unknown() []string {
	var names []string
	var walk func([]Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			if b.Kind == KindUnknown {
				names = append(names, b.Name)
			}
			walk(b.Children)
		}
	}
	walk(d.Blocks)
	return names
}

// UnknownBlockError is returned when a document holds a block kind the
// renderer has no presentation for.
type UnknownBlockError struct {
	Name string
}

func (e *UnknownBlockError) Error() string {
	return "unknown block kind: " + e.Name
}

// SyntaxError reports custom block tags that do not nest properly.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "render: " + e.Msg
}
