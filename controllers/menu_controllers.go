package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

const manageMenuForbidden = "Only admins can manage menu items"

type MenuController struct {
	menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{menus: menus}
}

type menuItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Available   *bool            `json:"available"`
	ImageURL    string           `json:"image_url"`
}

func (r menuItemRequest) input() services.MenuItemInput {
	return services.MenuItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Category:    r.Category,
		Available:   r.Available,
		ImageURL:    r.ImageURL,
	}
}

// GetMenuItems lists the catalog. category and availableOnly=true narrow it together.
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	filter := repository.MenuFilter{Category: strings.TrimSpace(c.Query("category"))}

	if raw := c.Query("availableOnly"); raw != "" {
		availableOnly, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidation("Invalid availableOnly value: %s", raw))
			return
		}
		filter.AvailableOnly = availableOnly
	}

	items, err := mc.menus.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items retrieved", items)
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := mc.menus.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item retrieved", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, manageMenuForbidden); !ok {
		return
	}

	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := mc.menus.Create(c.Request.Context(), req.input())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, manageMenuForbidden); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := mc.menus.Update(c.Request.Context(), id, req.input())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, manageMenuForbidden); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := mc.menus.Delete(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}

func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	if _, ok := utils.RequireRole(c, models.RoleAdmin, manageMenuForbidden); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := mc.menus.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item availability updated", item)
}
