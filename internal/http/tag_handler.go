package api

import (
	"encoding/json"
	"net/http"

	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
)

type createTagRequest struct {
	Name string `json:"name"`
}

// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200  {object}  response
// @Router      /api/tags [get]
func (h *Handler) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	if tags == nil {
		tags = []tag.Tag{}
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"tags": tags,
	})
}

// @Summary     Create a tag
// @Tags        tags
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createTagRequest  true  "Tag data"
// @Success     201      {object}  response
// @Failure     400      {object}  response
// @Failure     403      {object}  response
// @Router      /api/tags [post]
func (h *Handler) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	t, err := h.tagSvc.Create(r.Context(), req.Name)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Tag created successfully", map[string]any{
		"tag": t,
	})
}
