package routes

import (
	"github.com/gin-gonic/gin"

	"refurbmarket/internal/adapter/http/handlers"
)

const (
	PathQuotes   = "/quotes"
	PathOrders   = "/orders"
	PathInvoices = "/invoices"
)

func addMarketplaceRoutes(
	rg *gin.RouterGroup,
	quoteHandler *handlers.QuoteHandler,
	orderHandler *handlers.OrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:quote_id", quoteHandler.GetQuote)
		quotes.POST("/:quote_id/convert", quoteHandler.ConvertQuote)
		quotes.PATCH("/:quote_id/expiry", quoteHandler.ExtendExpiry)
	}

	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:order_id", orderHandler.GetOrder)
		orders.PATCH("/:order_id/confirm", orderHandler.ConfirmOrder)
		orders.PATCH("/:order_id/ship", orderHandler.MarkShipped)
		orders.PATCH("/:order_id/deliver", orderHandler.MarkDelivered)
		orders.POST("/:order_id/options", orderHandler.AddOptions)
		orders.GET("/:order_id/options", orderHandler.ListOptions)
		orders.POST("/:order_id/invoice", invoiceHandler.CreateInvoice)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:invoice_id", invoiceHandler.GetInvoice)
		invoices.PATCH("/:invoice_id/issue", invoiceHandler.IssueInvoice)
		invoices.POST("/:invoice_id/payments", paymentHandler.RegisterPayment)
		invoices.GET("/:invoice_id/payments", paymentHandler.ListPayments)
	}
}
