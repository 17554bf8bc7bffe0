package nav

import (
	"strings"

	"hongshengyuan.tech/web/internal/seo"
)

// Item is a top-level navigation entry. Hrefs are in-page anchors on the home
// page.
type Item struct {
	Anchor string // e.g. "about"
	Label  string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb is a breadcrumb entry; the last one is the current page.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Anchor: "home", Label: "首页"},
	{Anchor: "about", Label: "关于我们"},
	{Anchor: "products", Label: "产品中心"},
	{Anchor: "solutions", Label: "解决方案"},
	{Anchor: "contact", Label: "联系我们"},
}

// Build renders the navigation. Off the home page anchors are prefixed with
// "/" so they navigate back before scrolling.
func Build(currentPath string) []RenderedItem {
	onHome := currentPath == "" || currentPath == "/"
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		href := "#" + it.Anchor
		if !onHome {
			href = "/" + href
		}
		items = append(items, RenderedItem{
			Href:   href,
			Label:  it.Label,
			Active: onHome && it.Anchor == "home",
		})
	}
	return items
}

// ProductBreadcrumbs is the trail home > products > name.
func ProductBreadcrumbs(id, name string) []Crumb {
	return []Crumb{
		{Href: "/", Label: "首页"},
		{Href: "/#products", Label: "产品中心"},
		{Href: "/product/" + id, Label: name, Active: true},
	}
}

// Schema converts crumbs to breadcrumb schema items with absolute URLs.
func Schema(crumbs []Crumb, baseURL string) []seo.BreadcrumbItem {
	base := strings.TrimRight(baseURL, "/")
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		url := base
		if c.Href != "/" {
			url = base + c.Href
		}
		items = append(items, seo.BreadcrumbItem{Name: c.Label, URL: url})
	}
	return items
}
