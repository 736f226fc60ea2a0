package post_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedline/service/internal/blob"
	"github.com/feedline/service/internal/post"
)

func newTestRouter(t *testing.T) (http.Handler, *blob.MemoryStore) {
	t.Helper()
	store := post.NewMemoryStore()
	blobs := blob.NewMemoryStore()
	svc := post.NewService(store, blobs, discardLogger())
	h := post.NewHandler(svc, discardLogger())

	r := chi.NewRouter()
	r.Route("/api/posts", func(r chi.Router) {
		r.Post("/", h.CreatePost)
		r.Get("/", h.GetAllPosts)
		r.Get("/user/{userId}", h.GetUserPosts)
		r.Put("/{postId}", h.UpdatePost)
		r.Delete("/{postId}", h.DeletePost)
	})
	return r, blobs
}

type filePart struct {
	field       string
	filename    string
	contentType string
	body        string
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition",
			`form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		hdr.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func createPost(t *testing.T, router http.Handler, userID, content string, files ...filePart) post.Post {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"userId":  userID,
		"content": content,
	}, files...)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestCreatePostEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	p := createPost(t, router, "alice", "hello",
		filePart{field: "images", filename: "pic.jpg", contentType: "image/jpeg", body: "jpeg bytes"},
		filePart{field: "video", filename: "clip.mp4", contentType: "video/mp4", body: "mp4 bytes"},
	)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "alice", p.UserID)
	assert.Equal(t, "hello", p.Content)
	assert.Len(t, p.MediaIDs, 2)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreatePostRequiresUserID(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartBody(t, map[string]string{"content": "orphan"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID is required", rec.Body.String())
}

func TestListPostsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	createPost(t, router, "alice", "first")
	createPost(t, router, "bob", "second")
	createPost(t, router, "alice", "third")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var all []post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Content)
	assert.Equal(t, "first", all[2].Content)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/user/alice", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var alices []post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alices))
	require.Len(t, alices, 2)
	assert.Equal(t, "third", alices[0].Content)
	assert.Equal(t, "first", alices[1].Content)
}

func TestUpdatePostEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	p := createPost(t, router, "alice", "original")

	body, contentType := multipartBody(t, map[string]string{
		"userId":  "alice",
		"content": "edited",
	}, filePart{field: "images", filename: "new.png", contentType: "image/png", body: "png bytes"})

	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+p.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "edited", updated.Content)
	assert.Len(t, updated.MediaIDs, 1)
}

func TestUpdatePostWrongOwnerIsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)
	p := createPost(t, router, "alice", "original")

	body, contentType := multipartBody(t, map[string]string{
		"userId":  "mallory",
		"content": "stolen",
	})

	req := httptest.NewRequest(http.MethodPut, "/api/posts/"+p.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Post mutations surface every failure as 400 with the raw error text.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not belong")
}

func TestDeletePostEndpoint(t *testing.T) {
	router, blobs := newTestRouter(t)
	p := createPost(t, router, "alice", "short lived",
		filePart{field: "images", filename: "pic.png", contentType: "image/png", body: "png bytes"})
	require.Len(t, p.MediaIDs, 1)

	target := "/api/posts/" + p.ID + "?userId=" + url.QueryEscape("alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	var all []post.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Empty(t, all)

	assert.Zero(t, blobs.Len())
}

func TestDeletePostUnknownIsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/posts/missing?userId=alice", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "not found"))
}
