package routes

import (
	"time"

	"lexaid/handlers"
	"lexaid/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, sign-in and sign-out.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.AuthHandler.Register)
		api.POST("/login", hb.AuthHandler.Login)
		api.POST("/firebase", hb.AuthHandler.FirebaseSignIn)
		api.POST("/logout", middleware.JWTAuthMiddleware(hb.Auth), hb.AuthHandler.Logout)
	}
}

// RegisterDocumentRoutes registers the public document catalog.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/documents")
	{
		api.GET("", hb.DocumentsHandler.List)
		api.GET("/:id", hb.DocumentsHandler.Get)
	}
}

// RegisterAIRoutes registers the direct model endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth))
		api.POST("/draft", hb.AIHandler.Draft)
		api.POST("/citations", hb.AIHandler.Citations)
		api.POST("/transcribe", hb.AIHandler.Transcribe)
	}
}

// RegisterDraftingRoutes registers the drafting workspace.
func RegisterDraftingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drafting/:docType")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth))
		api.GET("", hb.DraftingHandler.Get)
		api.DELETE("", hb.DraftingHandler.Reset)
		api.POST("/generate", hb.DraftingHandler.Generate)
		api.POST("/citations", hb.DraftingHandler.Citations)
		api.POST("/save", hb.DraftingHandler.Save)
		api.PUT("/content", hb.DraftingHandler.UpdateContent)
		api.DELETE("/content", hb.DraftingHandler.DiscardContent)
		api.GET("/export", hb.DraftingHandler.Export)
	}
}

// RegisterRecordRoutes registers drafts, clauses and cases.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.Auth)

	drafts := r.Group("/api/drafts", auth)
	{
		drafts.GET("", hb.DraftHandler.List)
		drafts.POST("", hb.DraftHandler.Create)
		drafts.GET("/:id", hb.DraftHandler.Get)
		drafts.PATCH("/:id", hb.DraftHandler.Update)
		drafts.DELETE("/:id", hb.DraftHandler.Delete)
		drafts.GET("/:id/export", hb.DraftHandler.Export)
	}

	clauses := r.Group("/api/clauses", auth)
	{
		clauses.GET("", hb.ClauseHandler.List)
		clauses.POST("", hb.ClauseHandler.Create)
		clauses.PATCH("/:id", hb.ClauseHandler.Update)
		clauses.DELETE("/:id", hb.ClauseHandler.Delete)
	}

	cases := r.Group("/api/cases", auth)
	{
		cases.GET("", hb.CaseHandler.List)
		cases.POST("", hb.CaseHandler.Create)
		cases.GET("/:id", hb.CaseHandler.Get)
		cases.PATCH("/:id", hb.CaseHandler.Update)
		cases.DELETE("/:id", hb.CaseHandler.Delete)
		cases.POST("/:id/drafts/:draftId", hb.CaseHandler.LinkDraft)
		cases.DELETE("/:id/drafts/:draftId", hb.CaseHandler.UnlinkDraft)
	}
}

// RegisterProfileRoutes registers the signed-in user's profile.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth))
		api.GET("", hb.ProfileHandler.Get)
		api.PATCH("", hb.ProfileHandler.Update)
		api.POST("/photo", hb.ProfileHandler.UploadPhoto)
	}
}

// RegisterBillingRoutes registers plans, checkout and payment confirmation.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/billing")
	{
		api.GET("/plans", hb.BillingHandler.Plans)
		api.POST("/webhook/stripe", hb.BillingHandler.StripeWebhook)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth))
		protected.POST("/checkout", hb.BillingHandler.Checkout)
		protected.POST("/callback", hb.BillingHandler.Callback)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string, requestsPerMinute int) {
	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RateLimitMiddleware(requestsPerMinute))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterDraftingRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
}
