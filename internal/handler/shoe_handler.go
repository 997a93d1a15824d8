package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"shoe-store/internal/model"
	"shoe-store/internal/service"
	"shoe-store/internal/view"

	"github.com/rs/zerolog"
)

const shoesPath = "/api/shoes/"

// maxBodyBytes bounds the size of a create request.
const maxBodyBytes = 64 * 1024

// ShoeHandler serves the JSON catalogue API.
type ShoeHandler struct {
	service service.ShoeService
	logger  zerolog.Logger
}

// NewShoeHandler creates a new shoe API handler.
func NewShoeHandler(service service.ShoeService, logger zerolog.Logger) *ShoeHandler {
	return &ShoeHandler{
		service: service,
		logger:  logger.With().Str("handler", "shoe").Logger(),
	}
}

// List handles GET /api/shoes requests.
func (h *ShoeHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllow, "method not allowed", h.logger)
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	query.Section = r.URL.Query().Get("section")

	cards, err := h.service.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view.NewCards(cards))
}

// GetBySlug handles GET /api/shoes/{slug} requests.
func (h *ShoeHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllow, "method not allowed", h.logger)
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, shoesPath)
	if slug == "" || slug == r.URL.Path {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParam, "shoe slug is required", h.logger)
		return
	}

	card, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view.NewCard(card.Shoe, card.Variant))
}

// Create handles POST /api/shoes requests.
func (h *ShoeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllow, "method not allowed", h.logger)
		return
	}

	var req model.CreateShoeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	card, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view.NewCard(card.Shoe, card.Variant))
}

// NotFound answers API paths that match no route.
func (h *ShoeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "no API route for "+r.URL.Path, h.logger)
}

// parseListQuery reads sort, limit and offset from the query string.
func parseListQuery(r *http.Request) (service.ListQuery, error) {
	q := service.ListQuery{Sort: r.URL.Query().Get("sort")}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return q, model.NewDomainError(model.ErrCodeInvalidParam, "invalid limit parameter")
		}
		q.Limit = limit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return q, model.NewDomainError(model.ErrCodeInvalidParam, "invalid offset parameter")
		}
		q.Offset = offset
	}

	return q, nil
}
