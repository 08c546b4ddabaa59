package api

import (
	"encoding/json"
	"net/http"

	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
)

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200  {object}  response
// @Router      /api/categories [get]
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	if categories == nil {
		categories = []category.Category{}
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"categories": categories,
	})
}

// @Summary     Create a category
// @Tags        categories
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createCategoryRequest  true  "Category data"
// @Success     201      {object}  response
// @Failure     400      {object}  response
// @Failure     403      {object}  response
// @Router      /api/categories [post]
func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	c, err := h.categorySvc.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Category created successfully", map[string]any{
		"category": c,
	})
}
