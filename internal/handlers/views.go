package handlers

import (
	"fmt"
	"strings"
	"time"

	"hongshengyuan.tech/web/internal/catalog"
	"hongshengyuan.tech/web/internal/config"
	"hongshengyuan.tech/web/internal/contact"
	"hongshengyuan.tech/web/internal/nav"
	"hongshengyuan.tech/web/internal/seo"
)

const (
	productKeywordSuffix = "红盛源科技,智慧物联,OLED,健康光环境"
	robotsNoIndex        = "noindex"
	logoPath             = "/assets/images/logo.svg"
)

// Layout holds the fields every template in the shared layout reads.
type Layout struct {
	Site config.SiteConfig
	Path string
	Nav  []nav.RenderedItem
	Year int
}

// HomeData is the view model for the home page.
type HomeData struct {
	Layout
	Home     catalog.Home
	Products []catalog.Product

	Form      contact.Form
	FormError *contact.ValidationError
	Sent      bool
}

// ProductData is the view model for a product detail page.
type ProductData struct {
	Layout
	Product     catalog.Product
	Breadcrumbs []nav.Crumb
	Contact     catalog.Contact
}

// NotFoundData is the view model for unknown pages and products.
type NotFoundData struct {
	Layout
}

func buildLayout(site config.SiteConfig, path string, now time.Time) Layout {
	return Layout{
		Site: site,
		Path: path,
		Nav:  nav.Build(path),
		Year: now.Year(),
	}
}

// SiteBlocks are the JSON-LD blocks every page starts with.
func SiteBlocks(site config.SiteConfig) []seo.Block {
	return []seo.Block{
		seo.OrganizationSchema(site.Name, site.URL("/"), site.URL(logoPath)),
		seo.WebSiteSchema(site.Name, site.URL("/")),
	}
}

// HomePage is the metadata of the landing page.
func HomePage(site config.SiteConfig, home catalog.Home) Page {
	faqs := make([]seo.FAQ, 0, len(home.FAQ.Items))
	for _, q := range home.FAQ.Items {
		faqs = append(faqs, seo.FAQ{Question: q.Question, Answer: q.Answer})
	}
	blocks := []seo.Block{
		seo.CollectionPageSchema(home.Products.CollectionName, home.Products.CollectionDescription),
	}
	if len(faqs) > 0 {
		blocks = append(blocks, seo.FAQSchema(faqs))
	}
	return Page{
		SEO: seo.Config{
			Title:         home.SEO.Title,
			Description:   home.SEO.Description,
			Keywords:      home.SEO.Keywords,
			OGTitle:       home.SEO.OGTitle,
			OGDescription: home.SEO.OGDescription,
			OGImage:       imageURL(site, home.SEO.OGImage),
			CanonicalURL:  site.URL("/"),
		},
		Structured: blocks,
	}
}

// ProductPage is the metadata of a product detail page.
func ProductPage(site config.SiteConfig, p catalog.Product) Page {
	keywords := p.Keywords
	if keywords == "" {
		keywords = p.Name + "," + productKeywordSuffix
	}
	image := imageURL(site, p.Image)
	crumbs := nav.ProductBreadcrumbs(p.ID, p.Name)
	return Page{
		SEO: seo.Config{
			Title:         fmt.Sprintf("%s - %s", p.Name, site.Name),
			Description:   p.Summary,
			Keywords:      keywords,
			OGTitle:       p.Name,
			OGDescription: p.Subtitle,
			OGImage:       image,
			CanonicalURL:  site.URL("/product/" + p.ID),
		},
		Structured: []seo.Block{
			seo.ProductSchema(seo.Product{
				Name:        p.Name,
				Description: p.Summary,
				Image:       image,
				Price:       p.Price,
				Currency:    p.Currency,
				Rating:      p.Rating,
				ReviewCount: p.ReviewCount,
			}),
			seo.BreadcrumbSchema(nav.Schema(crumbs, site.BaseURL)),
		},
	}
}

// NotFoundPage is the metadata of the not-found view. It carries no
// structured data and asks crawlers not to index it.
func NotFoundPage(site config.SiteConfig) Page {
	return Page{
		SEO: seo.Config{
			Title:       "页面未找到 - " + site.Name,
			Description: "抱歉，我们找不到您要查看的页面。",
			Robots:      robotsNoIndex,
		},
		ResetStructured: true,
		ClearMetadata:   true,
	}
}

// imageURL makes a site-relative image absolute, falling back to the
// configured default image.
func imageURL(site config.SiteConfig, src string) string {
	switch {
	case src == "":
		return site.DefaultOGImage
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	default:
		return site.URL(src)
	}
}
