package services

import (
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/platform/config"
)

// Gateways are the outbound adapters used by the services.
type Gateways struct {
	Notifier portssvc.Notifier
	Files    portssvc.FileStore
	Renderer portssvc.InvoiceRenderer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, nil)
	container.ShareToken = NewShareTokenService(repos.UserRepo, cfg.FrontendBaseURL)

	// Ledger resolves category references through the category service.
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Category)

	container.Directory = NewDirectoryService(repos.DirectoryRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.DirectoryRepo, gw.Renderer, InvoiceSettings{
		NumberPrefix: cfg.InvoiceNumberPrefix,
		DueDays:      cfg.InvoiceDueDays,
	})
	container.Reimbursement = NewReimbursementService(repos.ReimbursementRepo, container.ShareToken, gw.Notifier)
	container.Upload = NewUploadService(gw.Files, cfg.MaxUploadBytes)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
	_ portssvc.UploadSvcFacade      = (*uploadService)(nil)
)
