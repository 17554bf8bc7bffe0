// Package dom adapts a parsed HTML document to the seo.Head interface.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"hongshengyuan.tech/web/internal/seo"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	head *Head
}

// Parse reads a complete HTML document. The HTML5 parser always synthesises
// <head>, so the returned document is guaranteed to have one.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	headNode := findElement(root, atom.Head)
	if headNode == nil {
		return nil, fmt.Errorf("dom: document has no head")
	}
	return &Document{root: root, head: NewHead(headNode)}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Head returns the document head.
func (d *Document) Head() *Head { return d.head }

// Render writes the document, including any head mutations, to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Selection exposes the document to goquery for read-side inspection.
func (d *Document) Selection() *goquery.Document {
	return goquery.NewDocumentFromNode(d.root)
}

// Head implements seo.Head over an <head> node.
type Head struct {
	node *html.Node
}

var _ seo.Head = (*Head)(nil)

// NewHead wraps n. A nil head is a caller bug.
func NewHead(n *html.Node) *Head {
	if n == nil {
		panic("dom: nil head node")
	}
	return &Head{node: n}
}

// Find returns the first element under the head matching sel.
func (h *Head) Find(sel seo.Selector) (seo.Element, bool) {
	s := h.query(sel).First()
	if s.Length() == 0 {
		return nil, false
	}
	return &Element{node: s.Get(0)}, true
}

// FindAll returns every element under the head matching sel.
func (h *Head) FindAll(sel seo.Selector) []seo.Element {
	s := h.query(sel)
	out := make([]seo.Element, 0, s.Length())
	for _, n := range s.Nodes {
		out = append(out, &Element{node: n})
	}
	return out
}

func (h *Head) query(sel seo.Selector) *goquery.Selection {
	return goquery.NewDocumentFromNode(h.node).Find(sel.String())
}

// Create returns a detached element node.
func (h *Head) Create(tag string) seo.Element {
	tag = strings.ToLower(tag)
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}}
}

// Append attaches el as the last child of the head.
func (h *Head) Append(el seo.Element) {
	n := nodeOf(el)
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	h.node.AppendChild(n)
}

// Remove detaches el if it belongs to the head.
func (h *Head) Remove(el seo.Element) {
	n := nodeOf(el)
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Len is the number of element children of the head.
func (h *Head) Len() int {
	count := 0
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

func nodeOf(el seo.Element) *html.Node {
	e, ok := el.(*Element)
	if !ok || e == nil {
		panic(fmt.Sprintf("dom: foreign element %T", el))
	}
	return e.node
}

// Element wraps an element node.
type Element struct {
	node *html.Node
}

// Tag returns the lower-cased element name.
func (e *Element) Tag() string { return e.node.Data }

// Attr returns the value of key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key, replacing an existing value in place.
func (e *Element) SetAttr(key, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// Text returns the concatenated text children.
func (e *Element) Text() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
