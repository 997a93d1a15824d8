package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"shoe-store/internal/catalog"
	"shoe-store/internal/model"
	"shoe-store/internal/service"
	"shoe-store/internal/view"

	"github.com/rs/zerolog"
)

const shoePagePath = "/shoe/"

// PageHandler serves the server-rendered storefront pages.
type PageHandler struct {
	service   service.ShoeService
	renderer  view.Renderer
	storeName string
	logger    zerolog.Logger
}

// NewPageHandler creates a new storefront page handler.
func NewPageHandler(service service.ShoeService, renderer view.Renderer, storeName string, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		service:   service,
		renderer:  renderer,
		storeName: storeName,
		logger:    logger.With().Str("handler", "page").Logger(),
	}
}

// Listing handles GET / and GET /{section}.
func (h *PageHandler) Listing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.Trim(r.URL.Path, "/")
	section, ok := catalog.ParseSection(slug)
	if !ok {
		h.notFound(w, r)
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query.Section = section.Slug

	cards, err := h.service.List(r.Context(), query)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSort) {
			http.Error(w, "invalid sort parameter", http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Str("section", section.Slug).Msg("failed to list shoes")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	title := section.Title
	if title == "" {
		title = "All Shoes"
	}

	h.render(w, http.StatusOK, h.renderer.RenderPage, view.Page{
		Title:  title,
		Header: view.NewHeader(h.storeName, section.Slug),
		Cards:  view.NewCards(cards),
	})
}

// Detail handles GET /shoe/{slug}.
func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, shoePagePath)
	if slug == "" || strings.Contains(slug, "/") {
		h.notFound(w, r)
		return
	}

	card, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, model.ErrShoeNotFound) {
			h.notFound(w, r)
			return
		}
		h.logger.Error().Err(err).Str("slug", slug).Msg("failed to get shoe")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, h.renderer.RenderDetail, view.Page{
		Title:  card.Name,
		Header: view.NewHeader(h.storeName, ""),
		Cards:  []view.Card{view.NewCard(card.Shoe, card.Variant)},
	})
}

func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Str("path", r.URL.Path).Msg("page not found")
	h.render(w, http.StatusNotFound, h.renderer.RenderNotFound, view.Page{
		Title:  "Not Found",
		Header: view.NewHeader(h.storeName, ""),
	})
}

// render writes the page only once it rendered completely, so a template
// failure turns into a clean 500.
func (h *PageHandler) render(w http.ResponseWriter, status int, fn func(io.Writer, view.Page) error, p view.Page) {
	var buf bytes.Buffer
	if err := fn(&buf, p); err != nil {
		h.logger.Error().Err(err).Str("title", p.Title).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
