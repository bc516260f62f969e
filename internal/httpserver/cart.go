package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addToCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		line, err := carts.Add(c.Request.Context(), currentUser(c).ID, c.Param("gameID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"line": line})
	}
}

func removeFromCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Remove(c.Request.Context(), currentUser(c).ID, c.Param("lineID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
