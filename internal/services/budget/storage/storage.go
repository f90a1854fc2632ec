// Package storage defines the persistence contracts for the budget service.
package storage

import (
	"context"
	"time"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity" states
// and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ProjectRecord captures the persisted project container.
type ProjectRecord struct {
	ID         string
	Name       string
	BudgetGoal int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomRecord captures the persisted room container.
type RoomRecord struct {
	ID         string
	ProjectID  string
	Name       string
	BudgetGoal int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WishlistRecord captures the persisted wishlist container.
type WishlistRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductFilter narrows a product item listing. At most one field may be
// set; ProjectID lists the products owned by any of the project's rooms.
type ProductFilter struct {
	RoomID     string
	WishlistID string
	ProjectID  string
}

// ProjectStore persists projects, rooms, and wishlists.
type ProjectStore interface {
	CreateProject(ctx context.Context, project ProjectRecord) error
	GetProject(ctx context.Context, projectID string) (ProjectRecord, error)
	CreateRoom(ctx context.Context, room RoomRecord) error
	GetRoom(ctx context.Context, roomID string) (RoomRecord, error)
	ListRooms(ctx context.Context, projectID string) ([]RoomRecord, error)
	CreateWishlist(ctx context.Context, wishlist WishlistRecord) error
	GetWishlist(ctx context.Context, wishlistID string) (WishlistRecord, error)
}

// ItemStore persists product and service line items. Updates are
// last-write-wins: concurrent writers to the same item are not detected.
type ItemStore interface {
	CreateProductItem(ctx context.Context, product item.ProductItem) error
	GetProductItem(ctx context.Context, itemID string) (item.ProductItem, error)
	UpdateProductItem(ctx context.Context, product item.ProductItem) error
	DeleteProductItem(ctx context.Context, itemID string) error
	ListProductItems(ctx context.Context, filter ProductFilter) ([]item.ProductItem, error)

	CreateServiceItem(ctx context.Context, service item.ServiceItem) error
	GetServiceItem(ctx context.Context, itemID string) (item.ServiceItem, error)
	UpdateServiceItem(ctx context.Context, service item.ServiceItem) error
	DeleteServiceItem(ctx context.Context, itemID string) error
	ListServiceItems(ctx context.Context, projectID, roomID string) ([]item.ServiceItem, error)
}

// Store combines every persistence contract the budget service consumes.
type Store interface {
	ProjectStore
	ItemStore
}
