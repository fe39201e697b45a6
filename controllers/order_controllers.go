package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderRequest struct {
	Items []struct {
		MenuItemID uint `json:"menu_item_id"`
		Quantity   int  `json:"quantity"`
	} `json:"items"`
}

// CreateOrder places an order for the caller. Quantities and item ids are
// validated by the service so every rejection uses the same messages.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	id, ok := utils.RequireSession(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]services.OrderLineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLineRequest{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	order, err := oc.orders.Create(c.Request.Context(), id.UserID, lines)
	if err != nil {
		utils.RespondError(c, badRequestStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := utils.RequireSession(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	order, err := oc.orders.Get(c.Request.Context(), id.UserID, orderID)
	if err != nil {
		utils.RespondError(c, badRequestStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved", order)
}

func (oc *OrderController) GetMyOrders(c *gin.Context) {
	id, ok := utils.RequireSession(c)
	if !ok {
		return
	}

	orders, err := oc.orders.ListForUser(c.Request.Context(), id.UserID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved", orders)
}

// UpdateOrderStatus sets ?status= on an order. Any known status is accepted
// from any other.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, "Only admins can update order status"); !ok {
		return
	}
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), orderID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, badRequestStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, "Only admins can view all orders"); !ok {
		return
	}

	orders, err := oc.orders.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved", orders)
}
