package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
	"github.com/karan-lumetium/portfolio-website/internal/worker"
)

type createPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featuredImage"`
	Published     bool     `json:"published"`
	CategoryID    *string  `json:"categoryId"`
	TagIDs        []string `json:"tagIds"`
}

type updatePostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featuredImage"`
	Published     *bool    `json:"published"`
	CategoryID    *string  `json:"categoryId"`
	TagIDs        []string `json:"tagIds"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// @Summary     List published posts
// @Tags        blog
// @Produce     json
// @Param       page      query     int     false  "Page number"
// @Param       limit     query     int     false  "Page size"
// @Param       category  query     string  false  "Category slug"
// @Param       tag       query     string  false  "Tag slug"
// @Param       search    query     string  false  "Title/content search"
// @Success     200       {object}  response
// @Router      /api/blog/posts [get]
func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := blog.ListFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	posts, total, err := h.blogSvc.List(r.Context(), f)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if posts == nil {
		posts = []blog.Post{}
	}

	pages := total / int64(f.Limit)
	if total%int64(f.Limit) != 0 {
		pages++
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"posts": posts,
		"pagination": pagination{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// @Summary     Get a post by slug
// @Tags        blog
// @Produce     json
// @Param       slug  path      string  true  "Post slug"
// @Success     200   {object}  response
// @Failure     404   {object}  response
// @Router      /api/blog/posts/{slug} [get]
func (h *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.blogSvc.GetBySlug(r.Context(), slug)
	if err != nil {
		errorResponse(w, err)
		return
	}

	// Non-blocking: a full channel just means this view goes uncounted.
	select {
	case h.viewCh <- worker.PostView{PostID: p.ID}:
	default:
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"post": p,
	})
}

// @Summary     Create a post
// @Tags        blog
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createPostRequest  true  "Post data"
// @Success     201      {object}  response
// @Failure     400      {object}  response
// @Failure     401      {object}  response
// @Failure     403      {object}  response
// @Router      /api/blog/posts [post]
func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	p, err := h.blogSvc.Create(r.Context(), userIDFromCtx(r), blog.CreateInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Post created successfully", map[string]any{
		"post": p,
	})
}

// @Summary     Update a post
// @Tags        blog
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      string             true  "Post ID"
// @Param       request  body      updatePostRequest  true  "Fields to change"
// @Success     200      {object}  response
// @Failure     404      {object}  response
// @Router      /api/blog/posts/{id} [put]
func (h *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	p, err := h.blogSvc.Update(r.Context(), id, blog.UpdateInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusOK, "Post updated successfully", map[string]any{
		"post": p,
	})
}

// @Summary     Delete a post
// @Tags        blog
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      string  true  "Post ID"
// @Success     200  {object}  response
// @Failure     404  {object}  response
// @Router      /api/blog/posts/{id} [delete]
func (h *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.blogSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Post deleted successfully",
	})
}
