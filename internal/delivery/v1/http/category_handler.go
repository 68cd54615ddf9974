package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

type linkParentRequest struct {
	ParentID int64 `json:"parent_id"`
}

type categoryResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Parents  []int64 `json:"parents"`
	Children []int64 `json:"children"`
}

// addCategory
//
//	@Summary		Создание категории
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			body	body		addCategoryRequest	true	"Имя категории"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/categories [post]
func (c *CategoryHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	id, err := c.categoryUsecase.AddCategory(r.Context(), req.Name)
	if err != nil {
		c.logger.Warnf("add category failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"CategoryID": id,
	})
}

// linkParent
//
//	@Summary		Привязка родительской категории
//	@Description	Добавляет категории ещё одного родителя, сохраняя граф ацикличным
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		int					true	"ID категории"
//	@Param			body	body		linkParentRequest	true	"ID родителя"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse	"Недопустимая связь"
//	@Failure		404	{object}	ErrorResponse	"Категория не найдена"
//	@Router			/categories/{id}/parents [post]
func (c *CategoryHandler) linkParent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req linkParentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if err := c.categoryUsecase.LinkParent(r.Context(), id, req.ParentID); err != nil {
		c.logger.Warnf("link category %d under %d failed: %s", id, req.ParentID, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getCategory
//
//	@Summary		Категория по ID
//	@Tags			categories
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	categoryResponse
//	@Failure		404	{object}	ErrorResponse	"Категория не найдена"
//	@Router			/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, categoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Parents:  category.Parents,
		Children: category.Children,
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}
	return id, nil
}
