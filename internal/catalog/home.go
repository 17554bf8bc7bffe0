package catalog

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Home is the content of the landing page.
type Home struct {
	SEO       HomeSEO         `yaml:"seo"`
	Hero      Hero            `yaml:"hero"`
	About     About           `yaml:"about"`
	Products  ProductsSection `yaml:"products"`
	Solutions Solutions       `yaml:"solutions"`
	FAQ       FAQSection      `yaml:"faq"`
	Contact   Contact         `yaml:"contact"`
}

// HomeSEO is the metadata the home page declares for itself.
type HomeSEO struct {
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Keywords      string `yaml:"keywords"`
	OGTitle       string `yaml:"og_title"`
	OGDescription string `yaml:"og_description"`
	OGImage       string `yaml:"og_image"`
}

type Hero struct {
	Tagline   string `yaml:"tagline"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Body      string `yaml:"body"`
	Image     string `yaml:"image"`
}

type About struct {
	Title      string `yaml:"title"`
	Body       string `yaml:"body"`
	Highlights []Card `yaml:"highlights"`
}

// Card is a titled blurb used by several sections.
type Card struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Icon  string `yaml:"icon"`
}

type ProductsSection struct {
	Eyebrow               string `yaml:"eyebrow"`
	Title                 string `yaml:"title"`
	CollectionName        string `yaml:"collection_name"`
	CollectionDescription string `yaml:"collection_description"`
	ShowcaseTitle         string `yaml:"showcase_title"`
	ShowcaseBody          string `yaml:"showcase_body"`
	ShowcaseImage         string `yaml:"showcase_image"`
}

type Solutions struct {
	Eyebrow      string `yaml:"eyebrow"`
	Title        string `yaml:"title"`
	Items        []Card `yaml:"items"`
	PartnerTitle string `yaml:"partner_title"`
	PartnerBody  string `yaml:"partner_body"`
	Image        string `yaml:"image"`
}

type FAQSection struct {
	Title string     `yaml:"title"`
	Items []Question `yaml:"items"`
}

// Question is a single FAQ entry.
type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Contact struct {
	Title   string `yaml:"title"`
	Intro   string `yaml:"intro"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
}

func loadHome(fsys fs.FS) (Home, error) {
	data, err := fs.ReadFile(fsys, "home.yaml")
	if err != nil {
		return Home{}, fmt.Errorf("catalog: read home: %w", err)
	}
	var h Home
	if err := yaml.Unmarshal(data, &h); err != nil {
		return Home{}, fmt.Errorf("catalog: parse home: %w", err)
	}
	if h.SEO.Title == "" || h.SEO.Description == "" {
		return Home{}, fmt.Errorf("catalog: home: seo title and description are required")
	}
	for i := range h.FAQ.Items {
		h.FAQ.Items[i].Question = clean(h.FAQ.Items[i].Question)
		h.FAQ.Items[i].Answer = clean(h.FAQ.Items[i].Answer)
	}
	return h, nil
}
