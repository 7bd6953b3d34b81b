package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/workflow"
)

type BulkHandler struct {
	engine *workflow.Engine
}

func NewBulkHandler(engine *workflow.Engine) *BulkHandler {
	return &BulkHandler{engine: engine}
}

// BulkAssignDesigner godoc
// @Summary     Assign a designer to many orders
// @Description Applies the designer assignment order by order. Orders already
// @Description transitioned stay transitioned when a later one fails.
// @Tags        bulk
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkAssignDesignerRequest true "Selection and designer"
// @Success     200 {object} models.BulkResponse
// @Router      /bulk/assign-designer [post]
func (h *BulkHandler) BulkAssignDesigner(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.BulkAssignDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.OrderIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "empty selection"})
		return
	}

	result := h.engine.BulkAssignDesigner(actor, req.OrderIDs, req.DesignerID)
	c.JSON(http.StatusOK, bulkResponse(result))
}

// BulkDeliver godoc
// @Summary     Mark many orders delivered
// @Tags        bulk
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BulkDeliverRequest true "Selection"
// @Success     200 {object} models.BulkResponse
// @Router      /bulk/deliver [post]
func (h *BulkHandler) BulkDeliver(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.BulkDeliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.OrderIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "empty selection"})
		return
	}

	result := h.engine.BulkMarkDelivered(actor, req.OrderIDs)
	c.JSON(http.StatusOK, bulkResponse(result))
}

func bulkResponse(result *workflow.BulkResult) models.BulkResponse {
	resp := models.BulkResponse{
		Updated:  make([]models.Order, 0, len(result.Updated)),
		Failures: result.Failures,
	}
	for _, order := range result.Updated {
		resp.Updated = append(resp.Updated, *order)
	}
	return resp
}
