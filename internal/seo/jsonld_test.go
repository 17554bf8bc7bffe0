package seo_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hongshengyuan.tech/web/internal/seo"
)

func marshal(t *testing.T, b seo.Block) string {
	t.Helper()
	s, err := seo.Marshal(b)
	require.NoError(t, err)
	return s
}

func TestBreadcrumbSchema(t *testing.T) {
	t.Parallel()
	got := seo.BreadcrumbSchema([]seo.BreadcrumbItem{
		{Name: "Home", URL: "/"},
		{Name: "Products", URL: "/products"},
	})
	want := `{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[` +
		`{"@type":"ListItem","position":1,"name":"Home","item":"/"},` +
		`{"@type":"ListItem","position":2,"name":"Products","item":"/products"}]}`
	assert.JSONEq(t, want, marshal(t, got))
}

func TestBreadcrumbSchemaEmpty(t *testing.T) {
	t.Parallel()
	got := marshal(t, seo.BreadcrumbSchema(nil))
	assert.JSONEq(t, `{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}`, got)
}

func TestBreadcrumbSchemaIsDeterministic(t *testing.T) {
	t.Parallel()
	items := []seo.BreadcrumbItem{{Name: "首页", URL: "https://hongshengyuan.tech/"}}
	assert.Equal(t, marshal(t, seo.BreadcrumbSchema(items)), marshal(t, seo.BreadcrumbSchema(items)))
}

func TestProductSchemaGating(t *testing.T) {
	t.Parallel()
	base := seo.Product{Name: "X", Description: "Y", Image: "Z"}

	cases := []struct {
		name       string
		mutate     func(p *seo.Product)
		wantOffers bool
		wantRating bool
	}{
		{name: "bare", mutate: func(*seo.Product) {}},
		{name: "price only", mutate: func(p *seo.Product) { p.Price = "100" }},
		{name: "currency only", mutate: func(p *seo.Product) { p.Currency = "USD" }},
		{name: "price and currency", mutate: func(p *seo.Product) { p.Price, p.Currency = "100", "USD" }, wantOffers: true},
		{name: "rating only", mutate: func(p *seo.Product) { p.Rating = 4.5 }},
		{name: "review count only", mutate: func(p *seo.Product) { p.ReviewCount = 12 }},
		{name: "rating and reviews", mutate: func(p *seo.Product) { p.Rating, p.ReviewCount = 4.5, 12 }, wantRating: true},
		{name: "everything", mutate: func(p *seo.Product) {
			p.Price, p.Currency, p.Rating, p.ReviewCount = "100", "USD", 4.5, 12
		}, wantOffers: true, wantRating: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := base
			tc.mutate(&p)
			block := seo.ProductSchema(p)

			assert.Equal(t, "Product", block["@type"])
			assert.Equal(t, "X", block["name"])
			assert.Equal(t, "Y", block["description"])
			assert.Equal(t, "Z", block["image"])
			_, hasOffers := block["offers"]
			_, hasRating := block["aggregateRating"]
			assert.Equal(t, tc.wantOffers, hasOffers)
			assert.Equal(t, tc.wantRating, hasRating)
		})
	}
}

func TestProductSchemaOffersShape(t *testing.T) {
	t.Parallel()
	got := seo.ProductSchema(seo.Product{Name: "X", Description: "Y", Image: "Z", Price: "100", Currency: "USD"})
	want := `{"@context":"https://schema.org","@type":"Product","name":"X","description":"Y","image":"Z",` +
		`"offers":{"@type":"Offer","price":"100","priceCurrency":"USD","availability":"https://schema.org/InStock"}}`
	assert.JSONEq(t, want, marshal(t, got))
}

func TestProductSchemaRatingShape(t *testing.T) {
	t.Parallel()
	got := seo.ProductSchema(seo.Product{Name: "X", Description: "Y", Image: "Z", Rating: 4.8, ReviewCount: 120})
	want := `{"@context":"https://schema.org","@type":"Product","name":"X","description":"Y","image":"Z",` +
		`"aggregateRating":{"@type":"AggregateRating","ratingValue":4.8,"reviewCount":120}}`
	assert.JSONEq(t, want, marshal(t, got))
}

type faqPage struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	MainEntity []struct {
		Type           string `json:"@type"`
		Name           string `json:"name"`
		AcceptedAnswer struct {
			Type string `json:"@type"`
			Text string `json:"text"`
		} `json:"acceptedAnswer"`
	} `json:"mainEntity"`
}

func TestFAQSchemaPreservesOrder(t *testing.T) {
	t.Parallel()
	faqs := []seo.FAQ{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	var page faqPage
	require.NoError(t, json.Unmarshal([]byte(marshal(t, seo.FAQSchema(faqs))), &page))

	assert.Equal(t, "https://schema.org", page.Context)
	assert.Equal(t, "FAQPage", page.Type)
	require.Len(t, page.MainEntity, len(faqs))

	got := make([]seo.FAQ, 0, len(page.MainEntity))
	for _, e := range page.MainEntity {
		assert.Equal(t, "Question", e.Type)
		assert.Equal(t, "Answer", e.AcceptedAnswer.Type)
		got = append(got, seo.FAQ{Question: e.Name, Answer: e.AcceptedAnswer.Text})
	}
	if diff := cmp.Diff(faqs, got); diff != "" {
		t.Fatalf("faq entries mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganizationSchemaOmitsEmptyFields(t *testing.T) {
	t.Parallel()
	got := seo.OrganizationSchema("红盛源", "", "")
	want := seo.Block{"@context": "https://schema.org", "@type": "Organization", "name": "红盛源"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("organization mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionPageSchema(t *testing.T) {
	t.Parallel()
	got := marshal(t, seo.CollectionPageSchema("产品中心", "红盛源科技的智慧产品系列"))
	assert.JSONEq(t, `{"@context":"https://schema.org","@type":"CollectionPage","name":"产品中心","description":"红盛源科技的智慧产品系列"}`, got)
}
