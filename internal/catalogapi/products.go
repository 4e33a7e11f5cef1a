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

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductDTO
// @Router /products [get]
func listProducts(c echo.Context) error {
	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	products, err := uow.Products().GetAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, dto.ProductsToDTO(products))
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductDTO
// @Failure 404 {object} webserver.RestError
// @Router /products/{id} [get]
func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	product, err := uow.Products().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, dto.ProductToDTO(product))
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductDTO true "Product"
// @Success 201 {object} dto.ProductDTO
// @Failure 400 {object} webserver.RestError
// @Failure 409 {object} webserver.RestError
// @Router /products [post]
func createProduct(c echo.Context) error {
	var payload dto.ProductDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	product := dto.NewProduct(payload)
	if err := uow.Products().Add(c.Request().Context(), &product); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fail(c, http.StatusConflict, "REFERENCE_NOT_FOUND", "Category does not exist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	if _, err := uow.Commit(); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fail(c, http.StatusConflict, "REFERENCE_NOT_FOUND", "Category does not exist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return created(c, fmt.Sprintf("/api/products/%d", product.ID), dto.ProductToDTO(&product))
}

// updateProduct godoc
// @Summary Replace a product
// @Tags products
// @Accept json
// @Param id path int true "Product ID"
// @Param product body dto.ProductDTO true "Product (id must match path)"
// @Success 204
// @Failure 400 {object} webserver.RestError
// @Failure 404 {object} webserver.RestError
// @Failure 409 {object} webserver.RestError
// @Router /products/{id} [put]
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload dto.ProductDTO
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
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
	product, err := uow.Products().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	dto.ApplyProduct(payload, product)
	if err := uow.Products().Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			if _, err2 := uow.Products().GetByID(ctx, id); errors.Is(err2, repository.ErrNotFound) {
				return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
			}
			return fail(c, http.StatusInternalServerError, "CONFLICT", "Product was modified concurrently", nil)
		case repository.IsForeignKeyViolation(err):
			return fail(c, http.StatusConflict, "REFERENCE_NOT_FOUND", "Category does not exist", nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
		}
	}
	if _, err := uow.Commit(); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fail(c, http.StatusConflict, "REFERENCE_NOT_FOUND", "Category does not exist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return noContent(c)
}

// deleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} webserver.RestError
// @Failure 500 {object} webserver.RestError
// @Router /products/{id} [delete]
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	uow, err := repository.NewUnitOfWork(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to open unit of work", err.Error())
	}
	defer uow.Rollback()

	deleted, err := uow.Products().Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	if _, err := uow.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return noContent(c)
}
