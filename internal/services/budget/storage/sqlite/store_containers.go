package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/storage"
)

func normalizeTimestamps(createdAt, updatedAt time.Time) (time.Time, time.Time) {
	createdAt = createdAt.UTC()
	updatedAt = updatedAt.UTC()
	if createdAt.IsZero() && updatedAt.IsZero() {
		createdAt = time.Now().UTC()
		updatedAt = createdAt
		return createdAt, updatedAt
	}
	if createdAt.IsZero() {
		createdAt = updatedAt
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return createdAt, updatedAt
}

// CreateProject inserts one project record.
func (s *Store) CreateProject(ctx context.Context, project storage.ProjectRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	projectID := strings.TrimSpace(project.ID)
	name := strings.TrimSpace(project.Name)
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	createdAt, updatedAt := normalizeTimestamps(project.CreatedAt, project.UpdatedAt)

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, budget_goal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		projectID,
		name,
		project.BudgetGoal,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetProject returns one project by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (storage.ProjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ProjectRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ProjectRecord{}, fmt.Errorf("storage is not configured")
	}

	var record storage.ProjectRecord
	var createdAt, updatedAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, budget_goal, created_at, updated_at FROM projects WHERE id = ?`,
		strings.TrimSpace(projectID),
	).Scan(&record.ID, &record.Name, &record.BudgetGoal, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ProjectRecord{}, storage.ErrNotFound
		}
		return storage.ProjectRecord{}, fmt.Errorf("get project: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// CreateRoom inserts one room record.
func (s *Store) CreateRoom(ctx context.Context, room storage.RoomRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	roomID := strings.TrimSpace(room.ID)
	projectID := strings.TrimSpace(room.ProjectID)
	name := strings.TrimSpace(room.Name)
	if roomID == "" {
		return fmt.Errorf("room id is required")
	}
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}
	if name == "" {
		return fmt.Errorf("room name is required")
	}
	createdAt, updatedAt := normalizeTimestamps(room.CreatedAt, room.UpdatedAt)

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rooms (id, project_id, name, budget_goal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		roomID,
		projectID,
		name,
		room.BudgetGoal,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// GetRoom returns one room by ID.
func (s *Store) GetRoom(ctx context.Context, roomID string) (storage.RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RoomRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RoomRecord{}, fmt.Errorf("storage is not configured")
	}

	var record storage.RoomRecord
	var createdAt, updatedAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, project_id, name, budget_goal, created_at, updated_at FROM rooms WHERE id = ?`,
		strings.TrimSpace(roomID),
	).Scan(&record.ID, &record.ProjectID, &record.Name, &record.BudgetGoal, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RoomRecord{}, storage.ErrNotFound
		}
		return storage.RoomRecord{}, fmt.Errorf("get room: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// ListRooms returns the rooms of a project ordered by creation time.
func (s *Store) ListRooms(ctx context.Context, projectID string) ([]storage.RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, project_id, name, budget_goal, created_at, updated_at
		 FROM rooms WHERE project_id = ? ORDER BY created_at, id`,
		strings.TrimSpace(projectID),
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var records []storage.RoomRecord
	for rows.Next() {
		var record storage.RoomRecord
		var createdAt, updatedAt int64
		if err := rows.Scan(&record.ID, &record.ProjectID, &record.Name, &record.BudgetGoal, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		record.UpdatedAt = fromMillis(updatedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return records, nil
}

// CreateWishlist inserts one wishlist record.
func (s *Store) CreateWishlist(ctx context.Context, wishlist storage.WishlistRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	wishlistID := strings.TrimSpace(wishlist.ID)
	name := strings.TrimSpace(wishlist.Name)
	if wishlistID == "" {
		return fmt.Errorf("wishlist id is required")
	}
	if name == "" {
		return fmt.Errorf("wishlist name is required")
	}
	createdAt, updatedAt := normalizeTimestamps(wishlist.CreatedAt, wishlist.UpdatedAt)

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wishlists (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		wishlistID,
		name,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("create wishlist: %w", err)
	}
	return nil
}

// GetWishlist returns one wishlist by ID.
func (s *Store) GetWishlist(ctx context.Context, wishlistID string) (storage.WishlistRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.WishlistRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.WishlistRecord{}, fmt.Errorf("storage is not configured")
	}

	var record storage.WishlistRecord
	var createdAt, updatedAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, created_at, updated_at FROM wishlists WHERE id = ?`,
		strings.TrimSpace(wishlistID),
	).Scan(&record.ID, &record.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.WishlistRecord{}, storage.ErrNotFound
		}
		return storage.WishlistRecord{}, fmt.Errorf("get wishlist: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}
