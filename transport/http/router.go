package http

import (
	"github.com/gin-gonic/gin"
	"github.com/veridian-labs/walletproof/ports"
	"github.com/veridian-labs/walletproof/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(issuer *service.Issuer, verifier *service.Verifier, ledger ports.Ledger) *gin.Engine {
	router := gin.Default()
	router.Use(RequestIDMiddleware())

	handlers := NewHandlers(issuer, verifier, ledger)

	did := router.Group("/did")
	{
		did.POST("/challenge", handlers.Challenge)
		did.POST("/verify", handlers.Verify)
	}

	router.GET("/ledger/accounts/:address", handlers.Account)
	router.GET("/healthz", handlers.Health)

	return router
}
