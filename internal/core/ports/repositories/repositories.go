package repositories

// RepositoryProvider bundles all repository implementations for wiring.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	PartyRepo   PartyRepositoryFacade
	JournalRepo JournalRepositoryWithTx
	ProductRepo ProductRepositoryWithTx
}
