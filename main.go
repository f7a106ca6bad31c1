package main

import (
	"event-booking-api/core/logger"
	"event-booking-api/core/server"

	_ "event-booking-api/docs" // Swagger docs
)

// @title Event Booking API
// @version 1.0
// @description API backend for event request booking and lifecycle management

// @contact.name API Support
// @contact.email support@eventbooking.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
