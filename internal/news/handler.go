package news

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/middleware"
	"github.com/kingarthur/content-api/internal/response"
)

const formFieldSlack = 512 * 1024

// Handler holds HTTP handlers for news endpoints.
type Handler struct {
	svc *Service
	cfg *config.Config
}

// NewHandler creates a new news Handler.
func NewHandler(svc *Service, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type mutationData struct {
	Success  bool    `json:"success" example:"true"`
	ID       string  `json:"id,omitempty"`
	Message  string  `json:"message"`
	ImageURL *string `json:"image_url"`
}

// List godoc
//
//	@Summary		List news
//	@Description	Unauthenticated callers only see published articles.
//	@Tags			news
//	@Produce		json
//	@Success		200	{array}	Item
//	@Router			/news [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), middleware.IsAuthenticated(r.Context()))
	if err != nil {
		log.Printf("news: list: %v", err)
		response.InternalError(w, "Failed to fetch news")
		return
	}
	response.OK(w, items)
}

// Get godoc
//
//	@Summary		Get a news article
//	@Description	Unauthenticated access to an unpublished article returns 403.
//	@Tags			news
//	@Produce		json
//	@Param			id	path		string	true	"Article ID"
//	@Success		200	{object}	Item
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/news/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), middleware.IsAuthenticated(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "News item not found")
		case errors.Is(err, ErrUnpublished):
			response.Forbidden(w, "This news item is not published")
		default:
			log.Printf("news: get: %v", err)
			response.InternalError(w, "Failed to fetch news item")
		}
		return
	}
	response.OK(w, it)
}

// Image godoc
//
//	@Summary	Stream a news image
//	@Tags		news
//	@Produce	image/jpeg
//	@Param		id	path	string	true	"Image blob ID"
//	@Success	200
//	@Failure	404	{object}	map[string]string
//	@Router		/news/image/{id} [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.svc.OpenImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Image not found in storage")
			return
		}
		log.Printf("news: open image: %v", err)
		response.InternalError(w, "Failed to load image")
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("news: stream image: %v", err)
	}
}

// Create godoc
//
//	@Summary	Create a news article
//	@Tags		news
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		title		formData	string	true	"Title"
//	@Param		content		formData	string	true	"Body content"
//	@Param		excerpt		formData	string	false	"Excerpt"
//	@Param		author		formData	string	false	"Author"
//	@Param		published	formData	bool	false	"Published flag"
//	@Param		image		formData	file	false	"Image file"
//	@Success	201	{object}	mutationData
//	@Failure	400	{object}	map[string]string
//	@Router		/news [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.readImageForm(w, r)
	if !ok {
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		response.BadRequest(w, "Title and content are required")
		return
	}

	it, err := h.svc.Create(r.Context(), CreateInput{
		Title:     title,
		Content:   content,
		Excerpt:   r.FormValue("excerpt"),
		Author:    r.FormValue("author"),
		Published: r.FormValue("published") == "true",
		Image:     upload,
	})
	if err != nil {
		log.Printf("news: create: %v", err)
		response.InternalError(w, "Failed to create news")
		return
	}

	response.Created(w, mutationData{
		Success:  true,
		ID:       it.ID,
		Message:  "News created successfully",
		ImageURL: it.ImageURL,
	})
}

// Update godoc
//
//	@Summary	Update a news article
//	@Tags		news
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Article ID"
//	@Success	200	{object}	mutationData
//	@Failure	404	{object}	map[string]string
//	@Router		/news/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.readImageForm(w, r)
	if !ok {
		return
	}

	in := UpdateInput{
		Title:   formValue(r, "title"),
		Content: formValue(r, "content"),
		Excerpt: formValue(r, "excerpt"),
		Author:  formValue(r, "author"),
		Image:   upload,
	}
	if v := formValue(r, "published"); v != nil {
		published := *v == "true"
		in.Published = &published
	}

	it, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "News item not found")
			return
		}
		log.Printf("news: update: %v", err)
		response.InternalError(w, "Failed to update news")
		return
	}

	response.OK(w, mutationData{
		Success:  true,
		Message:  "News updated successfully",
		ImageURL: it.ImageURL,
	})
}

// Delete godoc
//
//	@Summary	Delete a news article
//	@Tags		news
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Article ID"
//	@Success	200	{object}	mutationData
//	@Failure	404	{object}	map[string]string
//	@Router		/news/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "News item not found")
			return
		}
		log.Printf("news: delete: %v", err)
		response.InternalError(w, "Failed to delete news")
		return
	}
	response.OK(w, mutationData{Success: true, Message: "News deleted successfully"})
}

// readImageForm parses the multipart body under the configured size cap and
// extracts the optional "image" file.
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
