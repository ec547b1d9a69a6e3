package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/activity"
	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// ActivityHandler expone el log de auditoría, solo lectura.
type ActivityHandler struct {
	uc *activity.UseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Feed de actividad (más reciente primero)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        skip   query  int  false  "Offset"  default(0)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {object}  dto.ActivityListResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c, dto.MaxActivityPageLimit)
	out, err := h.uc.List(page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Actividades de un usuario
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        userID  path   string  true   "ID del usuario"
// @Param        skip    query  int     false  "Offset"  default(0)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.ActivityListResponse
// @Router       /api/activities/user/{userID} [get]
func (h *ActivityHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userID")
	page := pageFromQuery(c, dto.MaxActivityPageLimit)
	out, err := h.uc.ListByUser(userID, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByEntity godoc
// @Summary      Historial de una entidad concreta
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        entityType  path   string  true   "Tipo de entidad"  Enums(inventory, warehouse, sell_transaction, user)
// @Param        entityID    path   string  true   "ID de la entidad"
// @Param        skip        query  int     false  "Offset"  default(0)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200         {object}  dto.ActivityListResponse
// @Router       /api/activities/entity/{entityType}/{entityID} [get]
func (h *ActivityHandler) ListByEntity(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityID := c.Params("entityID")
	page := pageFromQuery(c, dto.MaxActivityPageLimit)
	out, err := h.uc.ListByEntity(entityType, entityID, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByType godoc
// @Summary      Actividades por tipo
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        type   path   string  true   "Tipo de actividad"
// @Param        skip   query  int     false  "Offset"  default(0)
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200    {object}  dto.ActivityListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/activities/type/{type} [get]
func (h *ActivityHandler) ListByType(c *fiber.Ctx) error {
	activityType := c.Params("type")
	page := pageFromQuery(c, dto.MaxActivityPageLimit)
	out, err := h.uc.ListByType(activityType, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListByEntityType godoc
// @Summary      Actividades por categoría de entidad
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        entityType  path   string  true   "Tipo de entidad"  Enums(inventory, warehouse, sell_transaction, user)
// @Param        skip        query  int     false  "Offset"  default(0)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200         {object}  dto.ActivityListResponse
// @Router       /api/activities/entity-type/{entityType} [get]
func (h *ActivityHandler) ListByEntityType(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	page := pageFromQuery(c, dto.MaxActivityPageLimit)
	out, err := h.uc.ListByEntityType(entityType, page.Limit, page.Skip)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
