package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/storage"
)

const productColumns = `id, name, category, unit_price, quantity, amount_paid,
	owner_kind, owner_id, planning_status, fulfillment_status, created_at, updated_at`

func ownerColumns(owner item.Owner) (string, string, error) {
	if owner.IsZero() {
		return "", "", fmt.Errorf("product owner is required")
	}
	return string(owner.Kind()), owner.ID(), nil
}

func ownerFromColumns(kind, id string) (item.Owner, error) {
	switch item.OwnerKind(kind) {
	case item.OwnerKindRoom:
		return item.RoomOwner(id), nil
	case item.OwnerKindWishlist:
		return item.WishlistOwner(id), nil
	default:
		return item.Owner{}, fmt.Errorf("unknown owner kind %q", kind)
	}
}

func scanProductItem(scan func(dest ...any) error) (item.ProductItem, error) {
	var product item.ProductItem
	var ownerKind, ownerID string
	var createdAt, updatedAt int64
	err := scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.UnitPrice,
		&product.Quantity,
		&product.AmountPaid,
		&ownerKind,
		&ownerID,
		&product.Planning,
		&product.Fulfillment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return item.ProductItem{}, err
	}
	owner, err := ownerFromColumns(ownerKind, ownerID)
	if err != nil {
		return item.ProductItem{}, err
	}
	product.Owner = owner
	product.CreatedAt = fromMillis(createdAt)
	product.UpdatedAt = fromMillis(updatedAt)
	return product, nil
}

// CreateProductItem inserts one product item.
func (s *Store) CreateProductItem(ctx context.Context, product item.ProductItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	itemID := strings.TrimSpace(product.ID)
	if itemID == "" {
		return fmt.Errorf("product item id is required")
	}
	ownerKind, ownerID, err := ownerColumns(product.Owner)
	if err != nil {
		return err
	}
	createdAt, updatedAt := normalizeTimestamps(product.CreatedAt, product.UpdatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO product_items (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID,
		strings.TrimSpace(product.Name),
		string(product.Category),
		product.UnitPrice,
		product.Quantity,
		product.AmountPaid,
		ownerKind,
		ownerID,
		string(product.Planning),
		string(product.Fulfillment),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("create product item: %w", err)
	}
	return nil
}

// GetProductItem returns one product item by ID.
func (s *Store) GetProductItem(ctx context.Context, itemID string) (item.ProductItem, error) {
	if err := ctx.Err(); err != nil {
		return item.ProductItem{}, err
	}
	if s == nil || s.sqlDB == nil {
		return item.ProductItem{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+productColumns+` FROM product_items WHERE id = ?`,
		strings.TrimSpace(itemID),
	)
	product, err := scanProductItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item.ProductItem{}, storage.ErrNotFound
		}
		return item.ProductItem{}, fmt.Errorf("get product item: %w", err)
	}
	return product, nil
}

// UpdateProductItem overwrites one product item. Last write wins: there is
// no version check against concurrent writers.
func (s *Store) UpdateProductItem(ctx context.Context, product item.ProductItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	itemID := strings.TrimSpace(product.ID)
	if itemID == "" {
		return fmt.Errorf("product item id is required")
	}
	ownerKind, ownerID, err := ownerColumns(product.Owner)
	if err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE product_items SET
		   name = ?, category = ?, unit_price = ?, quantity = ?, amount_paid = ?,
		   owner_kind = ?, owner_id = ?, planning_status = ?, fulfillment_status = ?, updated_at = ?
		 WHERE id = ?`,
		strings.TrimSpace(product.Name),
		string(product.Category),
		product.UnitPrice,
		product.Quantity,
		product.AmountPaid,
		ownerKind,
		ownerID,
		string(product.Planning),
		string(product.Fulfillment),
		toMillis(product.UpdatedAt.UTC()),
		itemID,
	)
	if err != nil {
		return fmt.Errorf("update product item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product item rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteProductItem removes one product item. Deletion is unconditional:
// approved and paid items delete like any other.
func (s *Store) DeleteProductItem(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM product_items WHERE id = ?`,
		strings.TrimSpace(itemID),
	)
	if err != nil {
		return fmt.Errorf("delete product item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product item rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListProductItems returns product items matching the filter, ordered by
// creation time.
func (s *Store) ListProductItems(ctx context.Context, filter storage.ProductFilter) ([]item.ProductItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT ` + productColumns + ` FROM product_items`
	var args []any
	switch {
	case strings.TrimSpace(filter.RoomID) != "":
		query += ` WHERE owner_kind = 'room' AND owner_id = ?`
		args = append(args, strings.TrimSpace(filter.RoomID))
	case strings.TrimSpace(filter.WishlistID) != "":
		query += ` WHERE owner_kind = 'wishlist' AND owner_id = ?`
		args = append(args, strings.TrimSpace(filter.WishlistID))
	case strings.TrimSpace(filter.ProjectID) != "":
		query += ` WHERE owner_kind = 'room' AND owner_id IN (SELECT id FROM rooms WHERE project_id = ?)`
		args = append(args, strings.TrimSpace(filter.ProjectID))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product items: %w", err)
	}
	defer rows.Close()

	var products []item.ProductItem
	for rows.Next() {
		product, err := scanProductItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product item: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product items: %w", err)
	}
	return products, nil
}
