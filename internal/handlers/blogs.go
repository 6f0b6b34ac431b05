package handlers

import (
	"net/http"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/types"
	"github.com/sirupsen/logrus"
)

// BlogHandler provides HTTP handlers for blogs.
type BlogHandler struct {
	blogs *services.BlogService
	responder
}

func NewBlogHandler(blogs *services.BlogService, logger logrus.FieldLogger) *BlogHandler {
	return &BlogHandler{blogs: blogs, responder: responder{logger: logger}}
}

func (h *BlogHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/all-blogs", Access: AdminOnly, Handler: h.ListBlogs},
		{Method: http.MethodGet, Pattern: "/published-blogs", Access: Public, Handler: h.ListPublished},
		{Method: http.MethodPost, Pattern: "/blogs", Access: Authenticated, Handler: h.CreateBlog},
		{Method: http.MethodDelete, Pattern: "/all-blogs/{id}", Access: AdminOnly, Handler: h.DeleteBlog},
		{Method: http.MethodPatch, Pattern: "/publish-blog/{id}", Access: AdminOnly, Handler: h.PublishBlog},
		{Method: http.MethodPatch, Pattern: "/unpublish-blog/{id}", Access: AdminOnly, Handler: h.UnpublishBlog},
	}
}

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "blog", "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.ListPublished(r.Context())
	if err != nil {
		h.fail(w, r, err, "blog", "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req types.Blog
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.AuthorEmail == "" {
		req.AuthorEmail = emailFromContext(r.Context())
	}

	created, err := h.blogs.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "blog", "failed to create blog")
		return
	}
	writeJSON(w, http.StatusCreated, types.InsertResult{Acknowledged: true, InsertedID: created.ID})
}

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	result, err := h.blogs.Delete(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "blog", "failed to delete blog")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BlogHandler) PublishBlog(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.blogs.Publish)
}

func (h *BlogHandler) UnpublishBlog(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.blogs.Unpublish)
}

func (h *BlogHandler) transition(w http.ResponseWriter, r *http.Request, apply updateFunc) {
	result, err := apply(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "blog", "failed to update blog")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
