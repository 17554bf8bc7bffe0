// Package seo maintains search-engine metadata in a document head: the title,
// description/keywords/Open Graph meta tags, the canonical link and schema.org
// JSON-LD blocks.
//
// Meta tags, the title and the canonical link are upserted: the head holds at
// most one element per identity and a later call overwrites the earlier value.
// Structured data is additive.
package seo

// Config is the desired metadata for the page being rendered. Empty optional
// fields mean "not supplied" and leave whatever the head already carries.
type Config struct {
	Title       string
	Description string

	Keywords      string
	OGTitle       string // defaults to Title
	OGDescription string // defaults to Description
	OGImage       string
	CanonicalURL  string
	Robots        string
}

// OGTitleOrDefault returns OGTitle or falls back to Title.
func (c Config) OGTitleOrDefault() string {
	if c.OGTitle != "" {
		return c.OGTitle
	}
	return c.Title
}

// OGDescriptionOrDefault returns OGDescription or falls back to Description.
func (c Config) OGDescriptionOrDefault() string {
	if c.OGDescription != "" {
		return c.OGDescription
	}
	return c.Description
}

// Apply writes cfg into h. Title, description, og:title and og:description are
// always written; keywords, og:image, canonical and robots only when supplied.
func Apply(h Head, cfg Config) {
	setTitle(h, cfg.Title)

	upsert(h, DescriptionSelector, "content", cfg.Description)
	if cfg.Keywords != "" {
		upsert(h, KeywordsSelector, "content", cfg.Keywords)
	}

	upsert(h, OGTitleSelector, "content", cfg.OGTitleOrDefault())
	upsert(h, OGDescriptionSelector, "content", cfg.OGDescriptionOrDefault())
	if cfg.OGImage != "" {
		upsert(h, OGImageSelector, "content", cfg.OGImage)
	}

	if cfg.CanonicalURL != "" {
		upsert(h, CanonicalSelector, "href", cfg.CanonicalURL)
	}
	if cfg.Robots != "" {
		upsert(h, RobotsSelector, "content", cfg.Robots)
	}
}

// ClearPageMetadata removes the optional, page-specific elements (keywords,
// og:image, canonical link, robots) so the next Apply does not inherit them
// from a previous page. Title, description and og title/description are left
// alone since every Apply overwrites them.
func ClearPageMetadata(h Head) {
	for _, sel := range []Selector{KeywordsSelector, OGImageSelector, CanonicalSelector, RobotsSelector} {
		for _, el := range h.FindAll(sel) {
			h.Remove(el)
		}
	}
}

// upsert finds the element identified by sel, creating and appending it when
// missing, and sets attr to value.
func upsert(h Head, sel Selector, attr, value string) Element {
	el := findOrCreate(h, sel)
	el.SetAttr(attr, value)
	return el
}

func setTitle(h Head, title string) {
	findOrCreate(h, TitleSelector).SetText(title)
}

func findOrCreate(h Head, sel Selector) Element {
	if el, ok := h.Find(sel); ok {
		return el
	}
	el := h.Create(sel.Tag)
	if sel.Attr != "" {
		el.SetAttr(sel.Attr, sel.Value)
	}
	h.Append(el)
	return el
}
