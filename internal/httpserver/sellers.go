package httpserver

import (
	"net/http"
	"strconv"

	"gamestore/internal/domain"
	"github.com/gin-gonic/gin"
)

func listStoresHandler(sellers SellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		minRating := 0.0
		if raw := c.Query("min_rating"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating"})
				return
			}
			minRating = parsed
		}
		stores, err := sellers.Stores(c.Request.Context(), minRating)
		if err != nil {
			respondError(c, err)
			return
		}
		if stores == nil {
			stores = []domain.SellerProfile{}
		}
		c.JSON(http.StatusOK, gin.H{"stores": stores})
	}
}

func getStoreHandler(sellers SellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := sellers.Store(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func registerSellerHandler(sellers SellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			StoreName   string `json:"storeName" binding:"required"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		profile, err := sellers.Register(c.Request.Context(), currentUser(c).ID, in.StoreName, in.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"profile": profile})
	}
}

func sellerDashboardHandler(sellers SellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard, err := sellers.DashboardFor(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

func addReviewHandler(sellers SellerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		review, err := sellers.AddReview(c.Request.Context(), currentUser(c).ID, c.Param("id"), in.Rating, in.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}
