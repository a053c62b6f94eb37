package handlers

import (
	"lexaid/services/user"
)

// HandlerBundle groups the endpoint handlers the router needs.
type HandlerBundle struct {
	// Auth backs the bearer-token middleware.
	Auth user.AuthService

	AuthHandler      *AuthHandler
	DocumentsHandler *DocumentsHandler
	AIHandler        *AIHandler
	DraftingHandler  *DraftingHandler
	DraftHandler     *DraftHandler
	ClauseHandler    *ClauseHandler
	CaseHandler      *CaseHandler
	ProfileHandler   *ProfileHandler
	BillingHandler   *BillingHandler
	HealthHandler    *HealthHandler
}
