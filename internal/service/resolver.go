package service

import "context"

// StorageResolver adapts the storage layer's name lookup methods to the
// NameResolver contract consumed by adapters.
type StorageResolver struct {
	Storage Storage
}

// CategoryName resolves a category's display name through storage.
func (r StorageResolver) CategoryName(ctx context.Context, id int64) (string, error) {
	return r.Storage.GetCategoryName(ctx, id)
}

// AccountName resolves an account's display name through storage.
func (r StorageResolver) AccountName(ctx context.Context, id int64) (string, error) {
	return r.Storage.GetAccountName(ctx, id)
}
