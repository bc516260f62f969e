package httpserver

import (
	"net/http"

	"gamestore/internal/domain"
	"github.com/gin-gonic/gin"
)

func listFavoritesHandler(favorites FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := favorites.ListFor(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Favorite{}
		}
		c.JSON(http.StatusOK, gin.H{"favorites": list})
	}
}

func addFavoriteHandler(favorites FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := favorites.Add(c.Request.Context(), currentUser(c).ID, c.Param("gameID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeFavoriteHandler(favorites FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := favorites.Remove(c.Request.Context(), currentUser(c).ID, c.Param("gameID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
