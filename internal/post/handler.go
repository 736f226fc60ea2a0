package post

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedline/service/internal/response"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// attachments spill to temporary files.
const maxUploadMemory = 32 << 20

// Handler holds HTTP handlers for post endpoints.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates a new post Handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// CreatePost godoc
//
//	@Summary		Create post
//	@Description	Create a text post with optional image and video attachments. Attachments are stored in the media blob store; their identifiers appear on the post in upload order (images first, then video).
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Param			userId	formData	string	true	"Author identifier"
//	@Param			content	formData	string	true	"Post text"
//	@Param			images	formData	file	false	"Image attachments"
//	@Param			video	formData	file	false	"Video attachment"
//	@Success		200	{object}	Post
//	@Failure		400	{string}	string	"error text"
//	@Router			/posts [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		response.BadRequest(w, "User ID is required")
		return
	}
	content := r.FormValue("content")

	images, closeImages, err := openUploads(r.MultipartForm.File["images"])
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	defer closeImages()

	var video *Upload
	if headers := r.MultipartForm.File["video"]; len(headers) > 0 {
		hdr := headers[0]
		h.log.Info("video included", "filename", hdr.Filename, "size", hdr.Size,
			"contentType", hdr.Header.Get("Content-Type"))

		videos, closeVideo, err := openUploads(headers[:1])
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		defer closeVideo()
		video = &videos[0]
	}

	h.log.Info("creating post", "userId", userID)
	p, err := h.svc.Create(r.Context(), userID, content, images, video)
	if err != nil {
		h.log.Error("failed to create post", "userId", userID, "error", err)
		response.BadRequest(w, "Failed to create post: "+err.Error())
		return
	}

	response.OK(w, p)
}

// GetAllPosts godoc
//
//	@Summary	List posts
//	@Tags		posts
//	@Produce	json
//	@Success	200	{array}	Post
//	@Router		/posts [get]
func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.GetAll(r.Context())
	if err != nil {
		h.log.Error("failed to list posts", "error", err)
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, posts)
}

// GetUserPosts godoc
//
//	@Summary	List a user's posts
//	@Tags		posts
//	@Produce	json
//	@Param		userId	path	string	true	"Author identifier"
//	@Success	200	{array}	Post
//	@Router		/posts/user/{userId} [get]
func (h *Handler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	posts, err := h.svc.GetByAuthor(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to list user posts", "userId", userID, "error", err)
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, posts)
}

// UpdatePost godoc
//
//	@Summary		Update post
//	@Description	Replace a post's content and attachment list. Newly supplied images replace the previous attachments on the record.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Param			postId	path		string	true	"Post identifier"
//	@Param			userId	formData	string	true	"Author identifier"
//	@Param			content	formData	string	true	"New post text"
//	@Param			images	formData	file	false	"Replacement image attachments"
//	@Success		200	{object}	Post
//	@Failure		400	{string}	string	"error text"
//	@Router			/posts/{postId} [put]
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	userID := r.FormValue("userId")
	content := r.FormValue("content")

	images, closeImages, err := openUploads(r.MultipartForm.File["images"])
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	defer closeImages()

	p, err := h.svc.Update(r.Context(), postID, userID, content, images)
	if err != nil {
		h.log.Error("failed to update post", "postId", postID, "userId", userID, "error", err)
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, p)
}

// DeletePost godoc
//
//	@Summary		Delete post
//	@Description	Remove a post and its attachment blobs.
//	@Tags			posts
//	@Produce		plain
//	@Param			postId	path	string	true	"Post identifier"
//	@Param			userId	query	string	true	"Author identifier"
//	@Success		200	{string}	string	"empty body"
//	@Failure		400	{string}	string	"error text"
//	@Router			/posts/{postId} [delete]
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	userID := r.FormValue("userId")

	if err := h.svc.Delete(r.Context(), postID, userID); err != nil {
		h.log.Error("failed to delete post", "postId", postID, "userId", userID, "error", err)
		response.BadRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

// openUploads opens every file header and returns the uploads in order plus a
// release function closing all opened files.
func openUploads(headers []*multipart.FileHeader) ([]Upload, func(), error) {
	uploads := make([]Upload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, Upload{
			Reader:      f,
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
		})
	}
	return uploads, closeAll, nil
}
