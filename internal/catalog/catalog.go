// Package catalog loads the site's static content: the product lookup table
// and the home page sections. Content ships embedded in the binary as
// markdown files with YAML front matter plus a single home.yaml.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed content
var embedded embed.FS

// ErrNotFound is returned for unknown product ids.
var ErrNotFound = errors.New("catalog: not found")

// Product is one entry of the product lookup table.
type Product struct {
	ID           string
	Order        int
	Name         string
	Subtitle     string
	Icon         string
	Image        string
	Summary      string // plain text, used for metadata
	Body         template.HTML
	Features     []string
	Specs        []Spec
	Applications []string
	Keywords     string

	// Optional commercial data; empty/zero when not published.
	Price       string
	Currency    string
	Rating      float64
	ReviewCount int
}

// Spec is a labelled row of the technical data table.
type Spec struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type productFrontMatter struct {
	Order        int      `yaml:"order"`
	Name         string   `yaml:"name"`
	Subtitle     string   `yaml:"subtitle"`
	Icon         string   `yaml:"icon"`
	Image        string   `yaml:"image"`
	Summary      string   `yaml:"summary"`
	Keywords     string   `yaml:"keywords"`
	Features     []string `yaml:"features"`
	Specs        []Spec   `yaml:"specs"`
	Applications []string `yaml:"applications"`
	Price        string   `yaml:"price"`
	Currency     string   `yaml:"currency"`
	Rating       float64  `yaml:"rating"`
	ReviewCount  int      `yaml:"review_count"`
}

// Catalog is the loaded, immutable site content.
type Catalog struct {
	products []Product
	byID     map[string]int
	home     Home
}

// Default loads the embedded content.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads home.yaml and products/*.md from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	home, err := loadHome(fsys)
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(fsys)
	if err != nil {
		return nil, err
	}
	c := &Catalog{products: products, byID: make(map[string]int, len(products)), home: home}
	for i, p := range products {
		c.byID[p.ID] = i
	}
	return c, nil
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, error) {
	i, ok := c.byID[sanitizeID(id)]
	if !ok {
		return Product{}, ErrNotFound
	}
	return cloneProduct(c.products[i]), nil
}

// Products returns every product in display order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, cloneProduct(p))
	}
	return out
}

// Home returns the home page content.
func (c *Catalog) Home() Home { return c.home }

func loadProducts(fsys fs.FS) ([]Product, error) {
	files, err := fs.Glob(fsys, "products/*.md")
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(files))
	for _, file := range files {
		p, err := readProduct(fsys, file)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Order == products[j].Order {
			return products[i].ID < products[j].ID
		}
		return products[i].Order < products[j].Order
	})
	return products, nil
}

func readProduct(fsys fs.FS, file string) (Product, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Product{}, err
	}
	fm, body := splitFrontMatter(string(data))
	var front productFrontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Product{}, fmt.Errorf("catalog: parse front matter %s: %w", file, err)
		}
	}
	id := strings.TrimSuffix(path.Base(file), ".md")
	if strings.TrimSpace(front.Name) == "" {
		return Product{}, fmt.Errorf("catalog: %s: name is required", file)
	}
	rendered, err := renderMarkdown(body)
	if err != nil {
		return Product{}, fmt.Errorf("catalog: render %s: %w", file, err)
	}
	p := Product{
		ID:           id,
		Order:        front.Order,
		Name:         clean(front.Name),
		Subtitle:     clean(front.Subtitle),
		Icon:         clean(front.Icon),
		Image:        clean(front.Image),
		Summary:      clean(front.Summary),
		Body:         rendered,
		Features:     cleanAll(front.Features),
		Specs:        front.Specs,
		Applications: cleanAll(front.Applications),
		Keywords:     clean(front.Keywords),
		Price:        clean(front.Price),
		Currency:     strings.ToUpper(clean(front.Currency)),
		Rating:       front.Rating,
		ReviewCount:  front.ReviewCount,
	}
	for i := range p.Specs {
		p.Specs[i].Label = clean(p.Specs[i].Label)
		p.Specs[i].Value = clean(p.Specs[i].Value)
	}
	return p, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func sanitizeID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	id = strings.Trim(id, "/")
	if strings.Contains(id, "..") || strings.ContainsRune(id, '/') {
		return ""
	}
	return id
}

// clean trims and NFC-normalises content so visually identical strings
// compare and serialise identically.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneProduct(src Product) Product {
	cp := src
	cp.Features = append([]string(nil), src.Features...)
	cp.Specs = append([]Spec(nil), src.Specs...)
	cp.Applications = append([]string(nil), src.Applications...)
	return cp
}
