package wallet

// Transaction history paging
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
