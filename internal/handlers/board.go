package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/workflow"
)

type BoardHandler struct {
	store *store.Store
}

func NewBoardHandler(store *store.Store) *BoardHandler {
	return &BoardHandler{store: store}
}

// Board godoc
// @Summary     Workflow board
// @Description Returns the role's status columns with the visible orders in
// @Description each, optionally narrowed by a free-text search.
// @Tags        board
// @Produce     json
// @Security    Bearer
// @Param       q query string false "Search text"
// @Success     200 {object} models.BoardResponse
// @Router      /board [get]
func (h *BoardHandler) Board(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orders, err := h.store.ListOrders()
	if err != nil {
		respondError(c, err)
		return
	}

	visible := workflow.VisibleOrders(actor.Role, actor.ID, orders)
	visible = workflow.FilterByQuery(visible, c.Query("q"))

	statuses := workflow.VisibleStatuses(actor.Role)
	columns := make([]models.BoardColumn, 0, len(statuses))
	for _, status := range statuses {
		column := models.BoardColumn{Status: status, Orders: []models.Order{}}
		for _, order := range visible {
			if order.Status == status {
				column.Orders = append(column.Orders, order)
			}
		}
		columns = append(columns, column)
	}

	c.JSON(http.StatusOK, models.BoardResponse{Columns: columns})
}
