// Command seoinspect renders site pages in-process and prints what ends up in
// their head: title, meta tags, canonical link and JSON-LD blocks.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"hongshengyuan.tech/web/internal/catalog"
	"hongshengyuan.tech/web/internal/config"
	"hongshengyuan.tech/web/internal/dom"
	"hongshengyuan.tech/web/internal/handlers"
	"hongshengyuan.tech/web/internal/seo"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "seoinspect:", err)
		os.Exit(1)
	}
}

type metaEntry struct {
	Key     string `yaml:"key"`
	Content string `yaml:"content"`
}

type headReport struct {
	Path           string           `yaml:"path"`
	Status         int              `yaml:"status"`
	Title          string           `yaml:"title"`
	Meta           []metaEntry      `yaml:"meta"`
	Canonical      string           `yaml:"canonical,omitempty"`
	StructuredData []map[string]any `yaml:"structured_data"`
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "seoinspect",
		Usage:     "inspect the head metadata of rendered pages",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "templates",
				Usage:   "templates directory",
				EnvVars: []string{"SITE_TEMPLATES_DIR"},
				Value:   "templates",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "absolute site URL used for canonical and structured data links",
				EnvVars: []string{"SITE_BASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "head",
				Usage:     "render a page and print its head metadata as YAML",
				ArgsUsage: "<path>",
				Action:    headAction,
			},
			{
				Name:   "products",
				Usage:  "list product ids and names",
				Action: productsAction,
			},
		},
	}
}

func headAction(c *cli.Context) error {
	target := c.Args().First()
	if target == "" {
		return cli.Exit("a page path is required, e.g. seoinspect head /product/oled-lamp", 2)
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	router, err := buildRouter(c)
	if err != nil {
		return err
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	report, err := inspect(rec.Body)
	if err != nil {
		return err
	}
	report.Path = target
	report.Status = rec.Code

	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

func productsAction(c *cli.Context) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	for _, p := range cat.Products() {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", p.ID, p.Name)
	}
	return nil
}

func buildRouter(c *cli.Context) (http.Handler, error) {
	env := map[string]string{"SITE_TEMPLATES_DIR": c.String("templates")}
	if base := c.String("base-url"); base != "" {
		env["SITE_BASE_URL"] = base
	}
	cfg, err := config.Load(config.WithEnvMap(env))
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	renderer, err := handlers.NewRenderer(cfg.Paths.TemplatesDir, false)
	if err != nil {
		return nil, err
	}
	site, err := handlers.New(handlers.Deps{Site: cfg.Site, Catalog: cat, Renderer: renderer})
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	site.Routes(r)
	return r, nil
}

func inspect(body io.Reader) (headReport, error) {
	doc, err := dom.Parse(body)
	if err != nil {
		return headReport{}, err
	}
	var report headReport
	head := doc.Head()
	if el, ok := head.Find(seo.TitleSelector); ok {
		report.Title = el.Text()
	}
	if el, ok := head.Find(seo.CanonicalSelector); ok {
		report.Canonical, _ = el.Attr("href")
	}
	doc.Selection().Find("head meta").Each(func(_ int, s *goquery.Selection) {
		key, ok := s.Attr("name")
		if !ok {
			key, ok = s.Attr("property")
		}
		if !ok {
			return
		}
		content, _ := s.Attr("content")
		report.Meta = append(report.Meta, metaEntry{Key: key, Content: content})
	})
	for _, raw := range seo.StructuredData(head) {
		var block map[string]any
		if err := json.Unmarshal([]byte(raw), &block); err != nil {
			return headReport{}, fmt.Errorf("invalid JSON-LD block: %w", err)
		}
		report.StructuredData = append(report.StructuredData, block)
	}
	return report, nil
}
