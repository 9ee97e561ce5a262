package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TradeRepo  TradeRepositoryFacade
	LedgerRepo LedgerRepositoryFacade
	EFTRepo    EFTRepositoryFacade
	UserRepo   UserRepositoryFacade
}
