package services

import (
	"marketsafe_backend/internal/email"
)

// ServiceContainer groups every service so wiring code can pass them around
// as one unit.
type ServiceContainer struct {
	AccountService AccountService
	ListingService ListingService
	EmailProvider  email.Provider
}
