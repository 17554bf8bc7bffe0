package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hongshengyuan.tech/web/internal/catalog"
	"hongshengyuan.tech/web/internal/config"
	"hongshengyuan.tech/web/internal/contact"
	"hongshengyuan.tech/web/internal/middleware"
	"hongshengyuan.tech/web/internal/nav"
)

const maxFormBytes = 64 << 10

// Deps wires the collaborators of Site.
type Deps struct {
	Site     config.SiteConfig
	Catalog  *catalog.Catalog
	Contact  *contact.Service
	Renderer *Renderer
	Clock    func() time.Time
}

// Site serves the public pages.
type Site struct {
	site     config.SiteConfig
	catalog  *catalog.Catalog
	contact  *contact.Service
	renderer *Renderer
	clock    func() time.Time
}

// New builds the page handlers. Catalog and renderer are required.
func New(deps Deps) (*Site, error) {
	if deps.Catalog == nil {
		return nil, errors.New("handlers: catalog is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("handlers: renderer is required")
	}
	svc := deps.Contact
	if svc == nil {
		svc = contact.NewService(contact.ServiceDeps{})
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Site{
		site:     deps.Site,
		catalog:  deps.Catalog,
		contact:  svc,
		renderer: deps.Renderer,
		clock:    clock,
	}, nil
}

// Routes mounts the page routes on r.
func (s *Site) Routes(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/product/{id}", s.Product)
	r.Post("/contact", s.SubmitContact)
	r.NotFound(s.NotFound)
}

// Home renders the landing page.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	vm := s.homeData()
	vm.Sent = r.URL.Query().Get("sent") == "1"
	s.renderHome(w, r, http.StatusOK, vm)
}

// Product renders a product detail page or the not-found view.
func (s *Site) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.catalog.Product(id)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.Logger(r.Context()).Info("unknown product", zap.String("product_id", id))
		s.NotFound(w, r)
		return
	}
	if err != nil {
		middleware.Logger(r.Context()).Error("product lookup", zap.String("product_id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	vm := ProductData{
		Layout:      buildLayout(s.site, r.URL.Path, s.clock()),
		Product:     p,
		Breadcrumbs: nav.ProductBreadcrumbs(p.ID, p.Name),
		Contact:     s.catalog.Home().Contact,
	}
	s.renderer.Render(w, r, http.StatusOK, "product", vm, SiteBlocks(s.site), ProductPage(s.site, p))
}

// SubmitContact accepts the contact form. Success redirects back to the
// contact section; validation errors re-render the home page with the
// visitor's input.
func (s *Site) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := contact.Form{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}
	sub, err := s.contact.Submit(r.Context(), form)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		vm := s.homeData()
		vm.Form = form
		vm.FormError = verr
		s.renderHome(w, r, http.StatusUnprocessableEntity, vm)
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("contact submit", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	middleware.Logger(r.Context()).Info("contact accepted", zap.String("reference", sub.Reference))
	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}

// NotFound renders the not-found view with a 404.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	vm := NotFoundData{Layout: buildLayout(s.site, r.URL.Path, s.clock())}
	s.renderer.Render(w, r, http.StatusNotFound, "notfound", vm, SiteBlocks(s.site), NotFoundPage(s.site))
}

func (s *Site) homeData() HomeData {
	return HomeData{
		Layout:   buildLayout(s.site, "/", s.clock()),
		Home:     s.catalog.Home(),
		Products: s.catalog.Products(),
	}
}

func (s *Site) renderHome(w http.ResponseWriter, r *http.Request, status int, vm HomeData) {
	s.renderer.Render(w, r, status, "home", vm, SiteBlocks(s.site), HomePage(s.site, vm.Home))
}
