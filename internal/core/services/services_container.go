package services

import (
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Journal: NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.PartyRepo),
		Stock:   NewStockService(repos.ProductRepo),
	}
}
