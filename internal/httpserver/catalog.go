package httpserver

import (
	"net/http"

	"gamestore/internal/domain"
	catalogsvc "gamestore/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listGamesHandler(catalog CatalogService, auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.GameFilter{
			Search:     c.Query("q"),
			CategoryID: c.Query("category"),
			Sort:       c.Query("sort"),
		}
		// Moderators get substring matches on descriptions too.
		moderator := userFromToken(c, auth).IsModerator()
		games, err := catalog.List(c.Request.Context(), filter, moderator)
		if err != nil {
			respondError(c, err)
			return
		}
		if games == nil {
			games = []domain.Game{}
		}
		c.JSON(http.StatusOK, gin.H{"games": games})
	}
}

func getGameHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": game})
	}
}

func listCategoriesHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func createGameHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.GameInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		var sellerID *string
		if u := currentUser(c); u != nil {
			sellerID = &u.ID
		}
		game, err := catalog.CreateGame(c.Request.Context(), in, sellerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"game": game})
	}
}

func updateGameHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.GameInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		game, err := catalog.UpdateGame(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": game})
	}
}

func deleteGameHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func createCategoryHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		category, err := catalog.CreateCategory(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

func updateCategoryHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		category, err := catalog.UpdateCategory(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

func deleteCategoryHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
