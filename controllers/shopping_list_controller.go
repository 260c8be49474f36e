package controllers

import (
	"errors"
	"net/http"

	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

type ShoppingListController struct {
	Lists *services.ShoppingListService
}

func NewShoppingListController(lists *services.ShoppingListService) *ShoppingListController {
	return &ShoppingListController{Lists: lists}
}

func shoppingListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
	case errors.Is(err, services.ErrShoppingListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (sc *ShoppingListController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	list, err := sc.Lists.Get(uid, c.Param("planId"))
	if err != nil {
		shoppingListError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (sc *ShoppingListController) Regenerate(c *gin.Context) {
	uid := c.GetUint("userID")

	list, err := sc.Lists.Regenerate(uid, c.Param("planId"))
	if err != nil {
		shoppingListError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type updateItemInput struct {
	Owned   *bool `json:"owned"`
	Deleted *bool `json:"deleted"`
}

func (sc *ShoppingListController) UpdateItem(c *gin.Context) {
	uid := c.GetUint("userID")

	var input updateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Owned == nil && input.Deleted == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	list, err := sc.Lists.UpdateItem(uid, c.Param("planId"), c.Param("ingredientId"), input.Owned, input.Deleted)
	if err != nil {
		shoppingListError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Share returns the plain text used by the mobile share sheet.
func (sc *ShoppingListController) Share(c *gin.Context) {
	uid := c.GetUint("userID")

	list, err := sc.Lists.Get(uid, c.Param("planId"))
	if err != nil {
		shoppingListError(c, err)
		return
	}

	onlyUnowned := c.Query("unowned_only") == "true"
	c.JSON(http.StatusOK, gin.H{"text": services.ShoppingListShareText(list, onlyUnowned)})
}

// Export returns the list bucketed into store categories, plus a rendered
// checklist document.
func (sc *ShoppingListController) Export(c *gin.Context) {
	uid := c.GetUint("userID")

	list, err := sc.Lists.Get(uid, c.Param("planId"))
	if err != nil {
		shoppingListError(c, err)
		return
	}

	onlyUnowned := c.Query("unowned_only") == "true"
	c.JSON(http.StatusOK, gin.H{
		"sections": services.GroupShoppingListItems(list, onlyUnowned),
		"document": services.ShoppingListDocumentText(list, onlyUnowned),
	})
}
