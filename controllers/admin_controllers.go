package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type AdminController struct {
	orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{orders: orders}
}

// GetDashboardStats returns order counts per status and revenue.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, "Only admins can view order statistics"); !ok {
		return
	}

	stats, err := ac.orders.Stats(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved", stats)
}
