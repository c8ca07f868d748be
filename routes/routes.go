package routes

import (
	"os"

	"fieldserve-backend/config"
	"fieldserve-backend/controllers"
	"fieldserve-backend/services"
	"fieldserve-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(sms *services.SMSService, mailer *services.ReportMailer, reminders *services.ReminderService) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Uploaded report photos are served straight from disk
	r.Static("/uploads", "./uploads")

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	reportEmail := &controllers.ReportEmailController{Mailer: mailer}
	smsController := &controllers.SMSController{SMS: sms, Reminders: reminders}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service report routes
		reports := api.Group("/reports")
		{
			reports.POST("", controllers.CreateReport)
			reports.GET("", controllers.GetReports)
			reports.GET("/:id", controllers.GetReport)
			reports.PUT("/:id", controllers.UpdateReport)
			reports.DELETE("/:id", controllers.DeleteReport)
			reports.POST("/:id/finalize", controllers.FinalizeReport)
			reports.POST("/:id/email", reportEmail.SendReportEmail)
			reports.POST("/:id/photos", controllers.UploadReportPhotos)
			reports.GET("/:id/photos", controllers.GetReportPhotos)
		}

		// Photo routes
		photos := api.Group("/photos")
		{
			photos.PUT("/:id", controllers.UpdatePhoto)
			photos.DELETE("/:id", controllers.DeletePhoto)
		}

		// SMS routes
		smsRoutes := api.Group("/sms")
		{
			smsRoutes.POST("/reminder", smsController.SendReminder)
			smsRoutes.POST("/custom", smsController.SendCustom)
			smsRoutes.GET("", smsController.GetNotifications)
			smsRoutes.POST("/run-reminders", smsController.RunReminders)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
