package router

import (
	"github.com/gin-gonic/gin"
	"github.com/myhome/myhome-backend/config"
	"github.com/myhome/myhome-backend/internal/app/controller"
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	propertyController *controller.PropertyController
	imageController    *controller.PropertyImageController
	bookmarkController *controller.BookmarkController
	searchController   *controller.SearchController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	propertyController *controller.PropertyController,
	imageController *controller.PropertyImageController,
	bookmarkController *controller.BookmarkController,
	searchController *controller.SearchController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		propertyController: propertyController,
		imageController:    imageController,
		bookmarkController: bookmarkController,
		searchController:   searchController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "MYHOME API is running",
		})
	})

	// Serve uploaded property photos
	router.Static("/uploads", r.config.Upload.Path)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("/me", r.authController.GetProfile)
			users.PUT("/me", r.authController.UpdateProfile)

			// 계정 관리는 관리자 전용
			admin := users.Group("", r.authMiddleware.RequireRole(string(model.RoleAdmin)))
			{
				admin.GET("", r.authController.ListUsers)
				admin.GET("/:id", r.authController.GetUser)
				admin.PATCH("/:id", r.authController.UpdateUser)
				admin.DELETE("/:id", r.authController.DeleteUser)
			}
		}

		properties := v1.Group("/properties")
		{
			// 지역 필터 검색을 이력에 남기기 위해 선택 인증
			properties.GET("", r.authMiddleware.OptionalAuthenticate(), r.propertyController.ListProperties)
			properties.GET("/:id", r.propertyController.GetProperty)
			properties.GET("/:id/images", r.imageController.ListImages)
			properties.GET("/:id/images/main", r.imageController.GetMainImage)

			properties.POST("",
				r.authMiddleware.Authenticate(),
				r.propertyController.CreateProperty,
			)
			properties.PATCH("/:id",
				r.authMiddleware.Authenticate(),
				r.propertyController.UpdateProperty,
			)
			properties.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.propertyController.DeleteProperty,
			)

			properties.POST("/:id/images",
				r.authMiddleware.Authenticate(),
				r.imageController.AddImage,
			)
			properties.PUT("/:id/images/order",
				r.authMiddleware.Authenticate(),
				r.imageController.ReorderImages,
			)
			properties.DELETE("/:id/images/:image_id",
				r.authMiddleware.Authenticate(),
				r.imageController.DeleteImage,
			)

			properties.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(string(model.RoleAdmin)),
				r.propertyController.ExportProperties,
			)
		}

		search := v1.Group("/search")
		search.Use(r.authMiddleware.OptionalAuthenticate())
		{
			search.GET("/address", r.searchController.SearchByAddress)
			search.GET("/nearby", r.searchController.SearchNearby)
			search.GET("/subway", r.searchController.SearchNearSubway)
			search.GET("/places", r.searchController.SearchPlaces)
			search.GET("/places/nearby", r.searchController.SearchNearbyPlaces)
			search.GET("/geocode", r.searchController.GeocodeAddress)
			search.GET("/reverse-geocode", r.searchController.ReverseGeocode)
			search.GET("/popular", r.searchController.GetPopularKeywords)
			search.GET("/history", r.authMiddleware.Authenticate(), r.searchController.GetRecentSearches)
		}

		bookmarks := v1.Group("/bookmarks")
		bookmarks.Use(r.authMiddleware.Authenticate())
		{
			bookmarks.GET("", r.bookmarkController.GetBookmarks)
			bookmarks.POST("", r.bookmarkController.AddBookmark)
			bookmarks.GET("/:property_id/status", r.bookmarkController.GetBookmarkStatus)
			// 찜 ID로도, (사용자, 매물) 조합으로도 삭제할 수 있다
			bookmarks.DELETE("/:id", r.bookmarkController.RemoveBookmarkByID)
			bookmarks.DELETE("/properties/:property_id", r.bookmarkController.RemoveBookmark)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/image", r.uploadController.UploadImage)
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			upload.DELETE("/:filename", r.uploadController.DeleteFile)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
