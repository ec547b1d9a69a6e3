package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP para InventoryItem (protegido).
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        skip       query  int     false  "Offset"  default(0)
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        category   query  string  false  "Filtrar por categoría"
// @Param        min_stock  query  int     false  "Filtrar quantity >= min_stock"
// @Success      200        {object}  dto.InventoryItemListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.List(filterFromQuery(c), page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Listar inventario de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseID  path   string  true   "ID de la bodega"
// @Param        skip         query  int     false  "Offset"  default(0)
// @Param        limit        query  int     false  "Límite"  default(20)
// @Success      200          {object}  dto.InventoryItemListResponse
// @Router       /api/inventory/warehouse/{warehouseID} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.ListByWarehouse(warehouseID, filterFromQuery(c), page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar artículos por nombre o SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Término de búsqueda"
// @Param        skip   query  int     false  "Offset"  default(0)
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200    {object}  dto.InventoryItemListResponse
// @Router       /api/inventory/search [get]
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q es requerido"})
	}
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.Search(term, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Listar artículos de una categoría
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  path   string  true   "Categoría"
// @Param        skip      query  int     false  "Offset"  default(0)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Success      200       {object}  dto.InventoryItemListResponse
// @Router       /api/inventory/category/{category} [get]
func (h *InventoryHandler) ListByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.ListByCategory(category, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del artículo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// AdjustQuantity godoc
// @Summary      Ajustar stock de un artículo (delta positivo o negativo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del artículo"
// @Param        body  body  dto.AdjustQuantityRequest  true  "Delta y motivo"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustQuantity(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo (solo con stock en cero)
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Indicadores de inventario (global o por bodega)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Limitar a una bodega"
// @Success      200  {object}  dto.InventoryStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Query("warehouse_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// filterFromQuery arma el filtro opcional de listados de inventario.
func filterFromQuery(c *fiber.Ctx) repository.ItemFilter {
	filter := repository.ItemFilter{Category: c.Query("category")}
	if c.Query("min_stock") != "" {
		minStock := c.QueryInt("min_stock", 0)
		filter.MinStock = &minStock
	}
	return filter
}
