package career

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingarthur/content-api/internal/middleware"
	"github.com/kingarthur/content-api/internal/response"
)

// Handler holds HTTP handlers for career endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new career Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Department       string   `json:"department"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	SalaryRange      string   `json:"salary_range"`
	Published        bool     `json:"published"`
}

type updateRequest struct {
	Title            *string  `json:"title"`
	Location         *string  `json:"location"`
	Type             *string  `json:"type"`
	Department       *string  `json:"department"`
	Description      *string  `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	SalaryRange      *string  `json:"salary_range"`
	Published        *bool    `json:"published"`
}

type mutationData struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// List godoc
//
//	@Summary		List careers
//	@Description	Unauthenticated callers only see published postings.
//	@Tags			careers
//	@Produce		json
//	@Success		200	{array}	Item
//	@Router			/careers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.IsAuthenticated(r.Context()))
	if err != nil {
		log.Printf("career: list: %v", err)
		response.InternalError(w, "Failed to fetch careers")
		return
	}
	response.OK(w, items)
}

// Get godoc
//
//	@Summary		Get a career posting
//	@Description	Unauthenticated access to an unpublished posting returns 403.
//	@Tags			careers
//	@Produce		json
//	@Param			id	path		string	true	"Posting ID"
//	@Success		200	{object}	Item
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/careers/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), middleware.IsAuthenticated(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Career not found")
		case errors.Is(err, ErrUnpublished):
			response.Forbidden(w, "This career is not published")
		default:
			log.Printf("career: get: %v", err)
			response.InternalError(w, "Failed to fetch career")
		}
		return
	}
	response.OK(w, it)
}

// Create godoc
//
//	@Summary	Create a career posting
//	@Tags		careers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		createRequest	true	"Posting fields"
//	@Success	201		{object}	mutationData
//	@Failure	400		{object}	map[string]string
//	@Router		/careers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Title == "" || req.Location == "" || req.Type == "" || req.Department == "" {
		response.BadRequest(w, "Title, location, type, and department are required")
		return
	}
	if !ValidType(req.Type) {
		response.BadRequest(w, "Type must be one of: Full-time, Part-time, Contract, Internship")
		return
	}

	it, err := h.svc.Create(r.Context(), CreateInput{
		Title:            req.Title,
		Location:         req.Location,
		Type:             req.Type,
		Department:       req.Department,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		SalaryRange:      req.SalaryRange,
		Published:        req.Published,
	})
	if err != nil {
		log.Printf("career: create: %v", err)
		response.InternalError(w, "Failed to create career")
		return
	}

	response.Created(w, mutationData{Message: "Career created successfully", ID: it.ID})
}

// Update godoc
//
//	@Summary	Update a career posting
//	@Tags		careers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Posting ID"
//	@Param		request	body		updateRequest	true	"Fields to change"
//	@Success	200		{object}	mutationData
//	@Failure	404		{object}	map[string]string
//	@Router		/careers/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Type != nil && !ValidType(*req.Type) {
		response.BadRequest(w, "Type must be one of: Full-time, Part-time, Contract, Internship")
		return
	}

	it, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Title:            req.Title,
		Location:         req.Location,
		Type:             req.Type,
		Department:       req.Department,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		SalaryRange:      req.SalaryRange,
		Published:        req.Published,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Career not found")
			return
		}
		log.Printf("career: update: %v", err)
		response.InternalError(w, "Failed to update career")
		return
	}

	response.OK(w, mutationData{Message: "Career updated successfully", ID: it.ID})
}

// Delete godoc
//
//	@Summary	Delete a career posting
//	@Tags		careers
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Posting ID"
//	@Success	200	{object}	mutationData
//	@Failure	404	{object}	map[string]string
//	@Router		/careers/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Career not found")
			return
		}
		log.Printf("career: delete: %v", err)
		response.InternalError(w, "Failed to delete career")
		return
	}
	response.OK(w, mutationData{Message: "Career deleted successfully"})
}
