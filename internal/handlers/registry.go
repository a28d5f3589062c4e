package handlers

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	AccountHandler *AccountHandler
	ListingHandler *ListingHandler
	HealthHandler  *HealthHandler
}
