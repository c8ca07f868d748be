package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fieldserve-backend/config"
	"fieldserve-backend/models"
	"fieldserve-backend/routes"
	"fieldserve-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.ServiceReport{},
		&models.ReportPhoto{},
		&models.SMSNotification{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var smsProvider services.SMSProvider
	if provider, err := services.NewTwilioProvider(); err != nil {
		log.Printf("SMS sending disabled: %v", err)
	} else {
		smsProvider = provider
	}

	var emailSender services.EmailSender
	if sender, err := services.NewSESSender(context.Background()); err != nil {
		log.Printf("Email sending disabled: %v", err)
	} else {
		emailSender = sender
	}

	smsService := services.NewSMSService(config.DB, smsProvider)
	mailer := services.NewReportMailer(config.DB, emailSender, os.Getenv("REPORT_EMAIL_TO"))
	reminderService := services.NewReminderService(config.DB, smsService)
	reminderService.StartScheduler()

	r := routes.SetupRouter(smsService, mailer, reminderService)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
