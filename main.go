package main

import (
	"go-assistant-api/core/logger"
	"go-assistant-api/core/server"
)

// @title Mana Assistant API
// @version 1.0
// @description Backend for the Mana floating assistant widget: calendar, scheduling and smart suggestions.

// @contact.name API Support
// @contact.email support@mana-assistant.dev

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
		logger.Error("run server error", "error", err)
	}
}
