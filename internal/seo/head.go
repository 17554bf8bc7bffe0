package seo

import "strings"

// Element is a single node in the document head.
type Element interface {
	Tag() string
	Attr(key string) (string, bool)
	SetAttr(key, value string)
	Text() string
	SetText(text string)
}

// Head is the mutable document head the manager writes into. Callers own the
// head; the package keeps no state of its own.
type Head interface {
	// Find returns the first element matching sel.
	Find(sel Selector) (Element, bool)
	// FindAll returns every element matching sel in document order.
	FindAll(sel Selector) []Element
	// Create builds a detached element; it is not part of the head until Append.
	Create(tag string) Element
	Append(el Element)
	Remove(el Element)
}

// Selector identifies a head element by tag and, optionally, one attribute.
type Selector struct {
	Tag   string
	Attr  string
	Value string
}

// Well-known identities maintained by Apply.
var (
	TitleSelector         = Selector{Tag: "title"}
	DescriptionSelector   = MetaName("description")
	KeywordsSelector      = MetaName("keywords")
	RobotsSelector        = MetaName("robots")
	OGTitleSelector       = MetaProperty("og:title")
	OGDescriptionSelector = MetaProperty("og:description")
	OGImageSelector       = MetaProperty("og:image")
	CanonicalSelector     = Selector{Tag: "link", Attr: "rel", Value: "canonical"}
	StructuredSelector    = Selector{Tag: "script", Attr: "type", Value: StructuredDataType}
)

// StructuredDataType is the script type used for JSON-LD blocks.
const StructuredDataType = "application/ld+json"

// MetaName selects <meta name="...">.
func MetaName(name string) Selector {
	return Selector{Tag: "meta", Attr: "name", Value: name}
}

// MetaProperty selects <meta property="...">, the Open Graph form.
func MetaProperty(property string) Selector {
	return Selector{Tag: "meta", Attr: "property", Value: property}
}

// String renders the selector as a CSS selector, e.g. meta[name="description"].
func (s Selector) String() string {
	if s.Attr == "" {
		return s.Tag
	}
	var b strings.Builder
	b.WriteString(s.Tag)
	b.WriteByte('[')
	b.WriteString(s.Attr)
	b.WriteString(`="`)
	for _, r := range s.Value {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString(`"]`)
	return b.String()
}

// Matches reports whether el carries the selector's identity.
func (s Selector) Matches(el Element) bool {
	if el == nil || !strings.EqualFold(el.Tag(), s.Tag) {
		return false
	}
	if s.Attr == "" {
		return true
	}
	v, ok := el.Attr(s.Attr)
	return ok && v == s.Value
}
