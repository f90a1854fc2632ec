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

const serviceColumns = `id, project_id, room_id, name, category, price,
	planning_status, fulfillment_status, material_unit, material_quantity, material_type,
	labor_subcontractor, labor_scope, labor_duration_days, created_at, updated_at`

func scanServiceItem(scan func(dest ...any) error) (item.ServiceItem, error) {
	var service item.ServiceItem
	var roomID sql.NullString
	var createdAt, updatedAt int64
	err := scan(
		&service.ID,
		&service.ProjectID,
		&roomID,
		&service.Name,
		&service.Category,
		&service.Price,
		&service.Planning,
		&service.Fulfillment,
		&service.Material.Unit,
		&service.Material.Quantity,
		&service.Material.MaterialType,
		&service.Labor.Subcontractor,
		&service.Labor.Scope,
		&service.Labor.DurationDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return item.ServiceItem{}, err
	}
	service.RoomID = fromNullString(roomID)
	service.CreatedAt = fromMillis(createdAt)
	service.UpdatedAt = fromMillis(updatedAt)
	return service, nil
}

// CreateServiceItem inserts one service item.
func (s *Store) CreateServiceItem(ctx context.Context, service item.ServiceItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	itemID := strings.TrimSpace(service.ID)
	projectID := strings.TrimSpace(service.ProjectID)
	if itemID == "" {
		return fmt.Errorf("service item id is required")
	}
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}
	createdAt, updatedAt := normalizeTimestamps(service.CreatedAt, service.UpdatedAt)

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO service_items (`+serviceColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID,
		projectID,
		toNullString(service.RoomID),
		strings.TrimSpace(service.Name),
		string(service.Category),
		service.Price,
		string(service.Planning),
		string(service.Fulfillment),
		service.Material.Unit,
		service.Material.Quantity,
		service.Material.MaterialType,
		service.Labor.Subcontractor,
		service.Labor.Scope,
		service.Labor.DurationDays,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("create service item: %w", err)
	}
	return nil
}

// GetServiceItem returns one service item by ID.
func (s *Store) GetServiceItem(ctx context.Context, itemID string) (item.ServiceItem, error) {
	if err := ctx.Err(); err != nil {
		return item.ServiceItem{}, err
	}
	if s == nil || s.sqlDB == nil {
		return item.ServiceItem{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+serviceColumns+` FROM service_items WHERE id = ?`,
		strings.TrimSpace(itemID),
	)
	service, err := scanServiceItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item.ServiceItem{}, storage.ErrNotFound
		}
		return item.ServiceItem{}, fmt.Errorf("get service item: %w", err)
	}
	return service, nil
}

// UpdateServiceItem overwrites one service item. Last write wins.
func (s *Store) UpdateServiceItem(ctx context.Context, service item.ServiceItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	itemID := strings.TrimSpace(service.ID)
	if itemID == "" {
		return fmt.Errorf("service item id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE service_items SET
		   room_id = ?, name = ?, category = ?, price = ?,
		   planning_status = ?, fulfillment_status = ?,
		   material_unit = ?, material_quantity = ?, material_type = ?,
		   labor_subcontractor = ?, labor_scope = ?, labor_duration_days = ?, updated_at = ?
		 WHERE id = ?`,
		toNullString(service.RoomID),
		strings.TrimSpace(service.Name),
		string(service.Category),
		service.Price,
		string(service.Planning),
		string(service.Fulfillment),
		service.Material.Unit,
		service.Material.Quantity,
		service.Material.MaterialType,
		service.Labor.Subcontractor,
		service.Labor.Scope,
		service.Labor.DurationDays,
		toMillis(service.UpdatedAt.UTC()),
		itemID,
	)
	if err != nil {
		return fmt.Errorf("update service item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update service item rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteServiceItem removes one service item. Deletion is unconditional.
func (s *Store) DeleteServiceItem(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM service_items WHERE id = ?`,
		strings.TrimSpace(itemID),
	)
	if err != nil {
		return fmt.Errorf("delete service item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete service item rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListServiceItems returns the service items of a project, optionally
// narrowed to one room, ordered by creation time.
func (s *Store) ListServiceItems(ctx context.Context, projectID, roomID string) ([]item.ServiceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT ` + serviceColumns + ` FROM service_items WHERE project_id = ?`
	args := []any{strings.TrimSpace(projectID)}
	if strings.TrimSpace(roomID) != "" {
		query += ` AND room_id = ?`
		args = append(args, strings.TrimSpace(roomID))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service items: %w", err)
	}
	defer rows.Close()

	var services []item.ServiceItem
	for rows.Next() {
		service, err := scanServiceItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan service item: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service items: %w", err)
	}
	return services, nil
}
