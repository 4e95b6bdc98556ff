package domain

// EntityKind tags the marketplace entities passed between layers
type EntityKind string

const (
	EntityKindCollection      EntityKind = "collection"
	EntityKindNftItem         EntityKind = "nftitem"
	EntityKindPurchaseSession EntityKind = "purchase_session"
)

// Entity is implemented by collection.Collection, nftitem.NftItem and purchase.Session.
// Consumers switch on the concrete type and fail with ErrUnknownEntity on anything else.
type Entity interface {
	EntityKind() EntityKind
}
