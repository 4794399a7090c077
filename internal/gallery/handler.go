package gallery

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/response"
)

// multipart text fields get this much room on top of the image size cap
const formFieldSlack = 512 * 1024

// Handler holds HTTP handlers for gallery endpoints.
type Handler struct {
	svc *Service
	cfg *config.Config
}

// NewHandler creates a new gallery Handler.
func NewHandler(svc *Service, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type mutationData struct {
	Success  bool   `json:"success" example:"true"`
	ID       string `json:"id,omitempty"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
}

type cleanupData struct {
	Success      bool   `json:"success" example:"true"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// List godoc
//
//	@Summary	List gallery items
//	@Tags		gallery
//	@Produce	json
//	@Param		category	query		string	false	"Filter by category"
//	@Success	200			{array}		Item
//	@Router		/gallery [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("gallery: list: %v", err)
		response.InternalError(w, "Failed to fetch gallery items")
		return
	}
	response.OK(w, items)
}

// Get godoc
//
//	@Summary	Get a gallery item
//	@Tags		gallery
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	Item
//	@Failure	404	{object}	map[string]string
//	@Router		/gallery/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Gallery item not found")
			return
		}
		log.Printf("gallery: get: %v", err)
		response.InternalError(w, "Failed to fetch gallery item")
		return
	}
	response.OK(w, it)
}

// Image godoc
//
//	@Summary	Stream a gallery image
//	@Tags		gallery
//	@Produce	image/jpeg
//	@Param		id	path	string	true	"Image blob ID"
//	@Success	200
//	@Failure	404	{object}	map[string]string
//	@Router		/gallery/image/{id} [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.svc.OpenImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Image not found in storage")
			return
		}
		log.Printf("gallery: open image: %v", err)
		response.InternalError(w, "Failed to load image")
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	// Headers are committed once copying starts; a store-side read error
	// after that truncates the response.
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("gallery: stream image: %v", err)
	}
}

// Create godoc
//
//	@Summary	Create a gallery item
//	@Tags		gallery
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		title		formData	string	true	"Title"
//	@Param		description	formData	string	false	"Description"
//	@Param		category	formData	string	true	"Category"
//	@Param		image		formData	file	true	"Image file"
//	@Success	201	{object}	mutationData
//	@Failure	400	{object}	map[string]string
//	@Router		/gallery [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.readImageForm(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	if title == "" || category == "" || upload == nil {
		response.BadRequest(w, "Title, category, and image are required")
		return
	}

	it, err := h.svc.Create(r.Context(), CreateInput{
		Title:       title,
		Description: r.FormValue("description"),
		Category:    category,
		Image:       *upload,
	})
	if err != nil {
		log.Printf("gallery: create: %v", err)
		response.InternalError(w, "Failed to create gallery item")
		return
	}

	response.Created(w, mutationData{
		Success:  true,
		ID:       it.ID,
		Message:  "Gallery item created successfully",
		ImageURL: it.ImageURL,
	})
}

// Update godoc
//
//	@Summary	Update a gallery item
//	@Tags		gallery
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Item ID"
//	@Success	200	{object}	mutationData
//	@Failure	404	{object}	map[string]string
//	@Router		/gallery/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.readImageForm(w, r)
	if !ok {
		return
	}

	in := UpdateInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Category:    formValue(r, "category"),
		Image:       upload,
	}

	it, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Gallery item not found")
			return
		}
		log.Printf("gallery: update: %v", err)
		response.InternalError(w, "Failed to update gallery item")
		return
	}

	response.OK(w, mutationData{
		Success:  true,
		Message:  "Gallery item updated successfully",
		ImageURL: it.ImageURL,
	})
}

// Delete godoc
//
//	@Summary	Delete a gallery item
//	@Tags		gallery
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Item ID"
//	@Success	200	{object}	mutationData
//	@Failure	404	{object}	map[string]string
//	@Router		/gallery/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Gallery item not found")
			return
		}
		log.Printf("gallery: delete: %v", err)
		response.InternalError(w, "Failed to delete gallery item")
		return
	}
	response.OK(w, mutationData{Success: true, Message: "Gallery item deleted successfully"})
}

// Cleanup godoc
//
//	@Summary	Delete every gallery item and its image
//	@Tags		gallery
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cleanupData
//	@Router		/gallery/cleanup/all [delete]
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.DeleteAll(r.Context())
	if err != nil {
		log.Printf("gallery: cleanup: %v", err)
		response.InternalError(w, "Failed to cleanup gallery")
		return
	}
	response.OK(w, cleanupData{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d gallery items", count),
		DeletedCount: count,
	})
}

// Categories godoc
//
//	@Summary	List distinct gallery categories
//	@Tags		gallery
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/gallery/meta/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		log.Printf("gallery: categories: %v", err)
		response.InternalError(w, "Failed to fetch categories")
		return
	}
	response.OK(w, categories)
}

// readImageForm parses the multipart body under the configured size cap and
// extracts the optional "image" file. It writes the error response itself and
// returns ok=false when the request is already answered.
func (h *Handler) readImageForm(w http.ResponseWriter, r *http.Request) (*ImageUpload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFileSize+formFieldSlack)
	if err := r.ParseMultipartForm(h.cfg.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid or oversized multipart request")
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		response.BadRequest(w, "Invalid image field")
		return nil, false
	}

	if header.Size > h.cfg.MaxFileSize {
		_ = file.Close()
		response.BadRequest(w, "Image exceeds the maximum allowed size")
		return nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !h.cfg.AllowedMimeType(contentType) {
		_ = file.Close()
		response.BadRequest(w, "Unsupported image type")
		return nil, false
	}

	return &ImageUpload{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: contentType,
	}, true
}

// formValue reports a multipart text field only when the client sent it,
// so empty-but-present values still overwrite on partial updates.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
