package routes

import (
	"github.com/gin-gonic/gin"

	"profix/internal/authz"
	"profix/internal/handlers"
	"profix/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	requestHandler *handlers.RequestHandler,
	pmHandler *handlers.PMHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public
	r.GET("/services", catalogHandler.List)
	r.GET("/services/:slug", catalogHandler.GetBySlug)
	r.POST("/requests", requestHandler.Create)
	r.GET("/requests/:reference", requestHandler.GetByReference)

	r.POST("/auth/otp/request", authHandler.RequestOTP)
	r.POST("/auth/otp/verify", authHandler.VerifyOTP)
	r.POST("/admin/login", authHandler.AdminLogin)

	// ---- protected (JWT)
	r.Use(middleware.AuthMiddleware())

	// PM cabinet
	pm := r.Group("/pm", middleware.RequireRoles(authz.RolePM))
	{
		pm.GET("/me", pmHandler.Me)
		pm.PUT("/availability", pmHandler.SetAvailability)
		pm.GET("/requests", pmHandler.ListRequests)
		pm.POST("/requests/:id/status", pmHandler.UpdateStatus)
		pm.POST("/requests/:id/notes", pmHandler.AddNote)
	}

	// Admin portal
	admin := r.Group("/admin", middleware.RequireRoles(authz.RoleAdmin))
	{
		admin.GET("/requests", adminHandler.ListRequests)
		admin.POST("/requests/:id/assign", adminHandler.AssignRequest)
		admin.POST("/requests/:id/response", adminHandler.RespondToRequest)

		admin.POST("/pms", adminHandler.CreatePM)
		admin.GET("/pms", adminHandler.ListPMs)
		admin.PUT("/pms/:id", adminHandler.UpdatePM)

		admin.GET("/services", catalogHandler.ListAll)
		admin.POST("/services", catalogHandler.Create)
		admin.PUT("/services/:id", catalogHandler.Update)
		admin.DELETE("/services/:id", catalogHandler.Delete)

		admin.GET("/analytics", adminHandler.GetAnalytics)
		admin.GET("/reports/summary.pdf", adminHandler.DownloadSummaryPDF)
	}

	return r
}
