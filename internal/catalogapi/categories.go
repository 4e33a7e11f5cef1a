package catalogapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexcat/catalog/internal/dto"
	"github.com/nexcat/catalog/internal/repository"
	"github.com/nexcat/catalog/internal/webserver"
)

// registerCategoryRoutes registers category CRUD endpoints
func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryDTO
// @Router /categories [get]
func listCategories(c echo.Context) error {
	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	categories, err := uow.Categories().GetAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, dto.CategoriesToDTO(categories))
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryDTO
// @Failure 404 {object} webserver.RestError
// @Router /categories/{id} [get]
func getCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	category, err := uow.Categories().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", err.Error())
	}
	return ok(c, dto.CategoryToDTO(category))
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CategoryDTO true "Category"
// @Success 201 {object} dto.CategoryDTO
// @Failure 400 {object} webserver.RestError
// @Router /categories [post]
func createCategory(c echo.Context) error {
	var payload dto.CategoryDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	category := dto.NewCategory(payload)
	if err := uow.Categories().Add(c.Request().Context(), &category); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	if _, err := uow.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	return created(c, fmt.Sprintf("/api/categories/%d", category.ID), dto.CategoryToDTO(&category))
}

// updateCategory godoc
// @Summary Replace a category
// @Tags categories
// @Accept json
// @Param id path int true "Category ID"
// @Param category body dto.CategoryDTO true "Category (id must match path)"
// @Success 204
// @Failure 400 {object} webserver.RestError
// @Failure 404 {object} webserver.RestError
// @Router /categories/{id} [put]
func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	var payload dto.CategoryDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if payload.ID != id {
		return fail(c, http.StatusBadRequest, "ID_MISMATCH", "Path and body identifiers do not match", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	ctx := c.Request().Context()
	category, err := uow.Categories().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", err.Error())
	}

	dto.ApplyCategory(payload, category)
	if err := uow.Categories().Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// the row was touched between read and write: vanished means
			// 404, otherwise surface an opaque conflict
			if _, err2 := uow.Categories().GetByID(ctx, id); errors.Is(err2, repository.ErrNotFound) {
				return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
			}
			return fail(c, http.StatusInternalServerError, "CONFLICT", "Category was modified concurrently", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	if _, err := uow.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	return noContent(c)
}

// deleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} webserver.RestError
// @Failure 409 {object} webserver.RestError
// @Router /categories/{id} [delete]
func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	ctx := c.Request().Context()

	// Prevent deletion while products still reference this category; the
	// store FK constraint is the backstop for concurrent inserts.
	productCount, err := uow.Products().CountByCategory(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category usage", err.Error())
	}
	if productCount > 0 {
		return fail(c, http.StatusConflict, "CATEGORY_IN_USE", "Category is referenced by products and cannot be deleted",
			map[string]interface{}{"product_count": productCount})
	}

	deleted, err := uow.Categories().Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fail(c, http.StatusConflict, "CATEGORY_IN_USE", "Category is referenced by products and cannot be deleted", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	}
	if _, err := uow.Commit(); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fail(c, http.StatusConflict, "CATEGORY_IN_USE", "Category is referenced by products and cannot be deleted", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	return noContent(c)
}
