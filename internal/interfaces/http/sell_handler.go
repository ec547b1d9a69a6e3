package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/sale"
)

// SellHandler maneja el registro y la consulta de ventas (protegido).
type SellHandler struct {
	uc *sale.UseCase
}

// NewSellHandler construye el handler.
func NewSellHandler(uc *sale.UseCase) *SellHandler {
	return &SellHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de forma atómica y deja rastro de auditoría. Requiere rol super_admin.
// @Tags         sells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSellTransactionRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SellTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sells [post]
func (h *SellHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSellTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), sale.CreateInput{
		WarehouseID:     in.WarehouseID,
		InventoryItemID: in.InventoryItemID,
		Quantity:        in.Quantity,
		Description:     in.Description,
		ActorID:         GetUserID(c),
		ActorRole:       GetRole(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sells
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SellTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sells/{id} [get]
func (h *SellHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sells
// @Security     Bearer
// @Produce      json
// @Param        skip   query  int  false  "Offset"  default(0)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {object}  dto.SellTransactionListResponse
// @Router       /api/sells [get]
func (h *SellHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.List(page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Listar ventas de una bodega
// @Tags         sells
// @Security     Bearer
// @Produce      json
// @Param        warehouseID  path   string  true   "ID de la bodega"
// @Param        skip         query  int     false  "Offset"  default(0)
// @Param        limit        query  int     false  "Límite"  default(20)
// @Success      200          {object}  dto.SellTransactionListResponse
// @Router       /api/sells/warehouse/{warehouseID} [get]
func (h *SellHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.ListByWarehouse(warehouseID, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Listar ventas de un artículo
// @Tags         sells
// @Security     Bearer
// @Produce      json
// @Param        itemID  path   string  true   "ID del artículo"
// @Param        skip    query  int     false  "Offset"  default(0)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.SellTransactionListResponse
// @Router       /api/sells/item/{itemID} [get]
func (h *SellHandler) ListByItem(c *fiber.Ctx) error {
	itemID := c.Params("itemID")
	page := pageFromQuery(c, dto.MaxPageLimit)
	out, err := h.uc.ListByItem(itemID, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
