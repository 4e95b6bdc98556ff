package domain

// Table is a mongo collection name
type Table string

const (
	TableAccounts         Table = "accounts"
	TableCollections      Table = "collections"
	TableNFTItems         Table = "nftitems"
	TablePayTokens        Table = "paytokens"
	TablePurchaseSessions Table = "purchase_sessions"
)
