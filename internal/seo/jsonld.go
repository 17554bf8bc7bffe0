package seo

const schemaContext = "https://schema.org"

// InStock is the availability emitted for every offer.
const InStock = "https://schema.org/InStock"

// Block is a schema.org JSON-LD payload.
type Block map[string]any

// BreadcrumbItem is one step of a breadcrumb trail. URL should be absolute.
type BreadcrumbItem struct {
	Name string
	URL  string
}

// BreadcrumbSchema builds a schema.org BreadcrumbList with 1-based positions.
func BreadcrumbSchema(items []BreadcrumbItem) Block {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.URL,
		})
	}
	return Block{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Product describes an item for ProductSchema. Zero values mean absent.
type Product struct {
	Name        string
	Description string
	Image       string
	Price       string
	Currency    string
	Rating      float64
	ReviewCount int
}

// ProductSchema builds a schema.org Product. Offers are emitted only when both
// price and currency are set, the aggregate rating only when both rating and
// review count are set; a half-specified pair is dropped entirely.
func ProductSchema(p Product) Block {
	m := Block{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        p.Name,
		"description": p.Description,
		"image":       p.Image,
	}
	if p.Price != "" && p.Currency != "" {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         p.Price,
			"priceCurrency": p.Currency,
			"availability":  InStock,
		}
	}
	if p.Rating != 0 && p.ReviewCount != 0 {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": p.Rating,
			"reviewCount": p.ReviewCount,
		}
	}
	return m
}

// FAQ is a question with its answer.
type FAQ struct {
	Question string
	Answer   string
}

// FAQSchema builds a schema.org FAQPage preserving input order.
func FAQSchema(faqs []FAQ) Block {
	entities := make([]map[string]any, 0, len(faqs))
	for _, f := range faqs {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return Block{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// OrganizationSchema returns a minimal Organization schema.
func OrganizationSchema(name, url, logoURL string) Block {
	m := Block{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSiteSchema returns a minimal WebSite schema.
func WebSiteSchema(name, url string) Block {
	m := Block{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// CollectionPageSchema describes a listing page such as the product centre.
func CollectionPageSchema(name, description string) Block {
	return Block{
		"@context":    schemaContext,
		"@type":       "CollectionPage",
		"name":        name,
		"description": description,
	}
}
