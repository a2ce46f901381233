package main

import (
	_ "cotizador/docs"
	"cotizador/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Panel Quotation Service API
// @version         1.0
// @description     Quotation service for construction panels (dimension calculator, autoportancia validation, accessory pricing, IVA totals) backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
