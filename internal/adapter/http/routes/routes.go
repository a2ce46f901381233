package routes

import (
	"log"
	"os"
	"strconv"

	_ "cotizador/docs" // swagger artifact
	"cotizador/internal/adapter/http/handlers"
	"cotizador/internal/adapter/persistence/repository"
	"cotizador/internal/infrastructure/catalog"
	"cotizador/internal/infrastructure/database"
	"cotizador/internal/infrastructure/payments"
	"cotizador/internal/usecase"
	"cotizador/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := defaultPort
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}
	if err := router.Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	// Catalogs are loaded once; a missing or malformed catalog is fatal,
	// the service cannot quote without it.
	loader := catalog.NewLoader("")
	store, err := loader.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	rules, err := loader.LoadRules()
	if err != nil {
		log.Fatalf("Failed to load BOM rules: %v", err)
	}

	ddb := database.ConnectDynamoDB()
	quotationRepo := repository.NewQuotationDynamoRepository(ddb)
	paymentRepo := repository.NewQuotePaymentDynamoRepository(ddb)

	quoteUseCase := usecase.NewQuoteUseCase(store, rules, quotationRepo, usecase.QuoteConfigFromEnv())

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, quotationRepo, paymentGateway)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuotationRoutes(v1, quoteHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
