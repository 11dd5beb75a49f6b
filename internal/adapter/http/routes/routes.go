package routes

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "refurbmarket/docs" // This will be auto-generated
	"refurbmarket/internal/adapter/http/handlers"
	repository2 "refurbmarket/internal/adapter/persistence/repository"
	"refurbmarket/internal/infrastructure/database"
	"refurbmarket/internal/infrastructure/documents"
	"refurbmarket/internal/infrastructure/inventory"
	"refurbmarket/internal/infrastructure/notifications"
	"refurbmarket/internal/infrastructure/pricing"
	"refurbmarket/internal/usecase"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	optionRepo := repository2.NewOrderOptionDynamoRepository(ddb)
	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	catalogRepo := repository2.NewOptionCatalogDynamoRepository(ddb)

	pricingClient, err := pricing.NewPricingClient(os.Getenv("PRICING_BASE_URL"))
	if err != nil {
		log.Fatalf("Pricing source not configured: %v", err)
	}
	availabilityClient, err := inventory.NewAvailabilityClient(os.Getenv("INVENTORY_BASE_URL"))
	if err != nil {
		log.Fatalf("Availability source not configured: %v", err)
	}
	rendererClient, err := documents.NewRendererClient(os.Getenv("RENDERER_BASE_URL"))
	if err != nil {
		log.Fatalf("Document renderer not configured: %v", err)
	}
	notifier := notifications.NewWebhookNotifier(os.Getenv("NOTIFY_WEBHOOK_URL"))

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, pricingClient)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, quoteRepo, optionRepo, pricingClient, availabilityClient, notifier)
	optionUseCase := usecase.NewOptionUseCase(optionRepo, orderRepo, catalogRepo)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, orderRepo, orderUseCase, rendererClient, notifier)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, invoiceRepo, notifier)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase, orderUseCase)
	orderHandler := handlers.NewOrderHandler(orderUseCase, optionUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMarketplaceRoutes(v1, quoteHandler, orderHandler, invoiceHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
