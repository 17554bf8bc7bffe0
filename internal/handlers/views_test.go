package handlers

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hongshengyuan.tech/web/internal/catalog"
	"hongshengyuan.tech/web/internal/config"
	"hongshengyuan.tech/web/internal/dom"
	"hongshengyuan.tech/web/internal/middleware"
	"hongshengyuan.tech/web/internal/seo"
)

var testSite = config.SiteConfig{
	BaseURL: "https://hongshengyuan.tech",
	Name:    "深圳市红盛源科技有限公司",
	Locale:  "zh_CN",
}

func TestProductPageMetadata(t *testing.T) {
	p := catalog.Product{
		ID:       "oled-lamp",
		Name:     "OLED护眼台灯",
		Subtitle: "第四代健康光源技术",
		Summary:  "护眼台灯",
		Image:    "/assets/images/lamp.svg",
	}
	page := ProductPage(testSite, p)

	assert.Equal(t, seo.Config{
		Title:         "OLED护眼台灯 - 深圳市红盛源科技有限公司",
		Description:   "护眼台灯",
		Keywords:      "OLED护眼台灯,红盛源科技,智慧物联,OLED,健康光环境",
		OGTitle:       "OLED护眼台灯",
		OGDescription: "第四代健康光源技术",
		OGImage:       "https://hongshengyuan.tech/assets/images/lamp.svg",
		CanonicalURL:  "https://hongshengyuan.tech/product/oled-lamp",
	}, page.SEO)
	require.Len(t, page.Structured, 2)
	assert.Equal(t, "Product", page.Structured[0]["@type"])
	assert.NotContains(t, page.Structured[0], "offers")
	assert.Equal(t, "BreadcrumbList", page.Structured[1]["@type"])
	assert.False(t, page.ResetStructured)
}

func TestProductPageUsesAuthoredKeywordsAndOffers(t *testing.T) {
	page := ProductPage(testSite, catalog.Product{
		ID: "x", Name: "X", Keywords: "a,b", Price: "99", Currency: "CNY",
		Image: "https://cdn.example.com/x.png",
	})
	assert.Equal(t, "a,b", page.SEO.Keywords)
	assert.Equal(t, "https://cdn.example.com/x.png", page.SEO.OGImage)
	assert.Contains(t, page.Structured[0], "offers")
}

func TestHomePageMetadata(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	page := HomePage(testSite, c.Home())

	assert.Equal(t, "深圳市红盛源科技有限公司 - 智慧物联 健康光环境", page.SEO.Title)
	assert.Equal(t, "https://hongshengyuan.tech", page.SEO.CanonicalURL)
	assert.Equal(t, "https://hongshengyuan.tech/assets/images/hero-banner.svg", page.SEO.OGImage)
	require.Len(t, page.Structured, 2)
	assert.Equal(t, seo.Block{
		"@context":    "https://schema.org",
		"@type":       "CollectionPage",
		"name":        "产品中心",
		"description": "红盛源科技的智慧产品系列",
	}, page.Structured[0])
	assert.Equal(t, "FAQPage", page.Structured[1]["@type"])
}

func TestImageURLFallsBackToDefault(t *testing.T) {
	site := testSite
	site.DefaultOGImage = "https://hongshengyuan.tech/og.png"
	assert.Equal(t, "https://hongshengyuan.tech/og.png", imageURL(site, ""))
	assert.Equal(t, "", imageURL(testSite, ""))
}

func TestNotFoundPageClearsPageState(t *testing.T) {
	doc, err := dom.ParseString(`<html><head><title>old</title>
<meta name="keywords" content="k">
<link rel="canonical" href="https://hongshengyuan.tech/product/x">
<script type="application/ld+json">{"@type":"Product"}</script>
</head><body></body></html>`)
	require.NoError(t, err)

	NotFoundPage(testSite).ApplyTo(context.Background(), doc.Head())

	h := doc.Head()
	assert.Empty(t, seo.StructuredData(h))
	_, ok := h.Find(seo.KeywordsSelector)
	assert.False(t, ok)
	_, ok = h.Find(seo.CanonicalSelector)
	assert.False(t, ok)
	robots, ok := h.Find(seo.RobotsSelector)
	require.True(t, ok)
	v, _ := robots.Attr("content")
	assert.Equal(t, "noindex", v)
	title, _ := h.Find(seo.TitleSelector)
	assert.Equal(t, "页面未找到 - 深圳市红盛源科技有限公司", title.Text())
}

func TestApplyToSkipsUnserializableBlocks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := middleware.WithLogger(context.Background(), zap.New(core))
	doc, err := dom.ParseString("<html><head></head><body></body></html>")
	require.NoError(t, err)

	page := Page{
		SEO: seo.Config{Title: "t", Description: "d"},
		Structured: []seo.Block{
			{"@type": "Broken", "value": math.NaN()},
			seo.WebSiteSchema("n", "https://example.com"),
		},
	}
	page.ApplyTo(ctx, doc.Head())

	blocks := seo.StructuredData(doc.Head())
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], `"WebSite"`)

	warned := logs.FilterMessage("skipping structured data block").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
	assert.Equal(t, "Broken", warned[0].ContextMap()["type"])
}
