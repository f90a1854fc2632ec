// Package app wires the budget orchestration service over the item store.
package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/budget"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/storage"
)

const tracerName = "platforma/budget"

// Service orchestrates planning and fulfillment transitions and budget
// reads. All state lives in the store: the service holds no caches, so
// every budget view is recomputed from a fresh snapshot.
type Service struct {
	store  storage.Store
	now    func() time.Time
	tracer trace.Tracer
}

// NewService creates a budget service over the provided store.
func NewService(store storage.Store) *Service {
	return &Service{
		store:  store,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
}

// WithNow overrides the service clock. Intended for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// ItemRef identifies one line item by id and kind.
type ItemRef struct {
	ID   string
	Kind item.Kind
}

// ComputeBudget reads a fresh snapshot of the project and derives its
// budget view.
func (s *Service) ComputeBudget(ctx context.Context, projectID string) (budget.View, error) {
	ctx, span := s.tracer.Start(ctx, "budget.compute",
		trace.WithAttributes(attribute.String("project.id", projectID)))
	defer span.End()

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return budget.View{}, err
	}
	roomRecords, err := s.store.ListRooms(ctx, projectID)
	if err != nil {
		return budget.View{}, err
	}
	products, err := s.store.ListProductItems(ctx, storage.ProductFilter{ProjectID: projectID})
	if err != nil {
		return budget.View{}, err
	}
	services, err := s.store.ListServiceItems(ctx, projectID, "")
	if err != nil {
		return budget.View{}, err
	}

	rooms := make([]budget.Room, 0, len(roomRecords))
	for _, record := range roomRecords {
		rooms = append(rooms, budget.Room{
			ID:         record.ID,
			Name:       record.Name,
			BudgetGoal: record.BudgetGoal,
		})
	}

	view := budget.Compute(budget.Project{
		ID:         project.ID,
		Name:       project.Name,
		BudgetGoal: project.BudgetGoal,
	}, rooms, products, services)
	return view, nil
}

// ApplyProductPlanning loads a product, applies a planning transition, and
// persists the result. On error the stored item is untouched.
func (s *Service) ApplyProductPlanning(ctx context.Context, itemID string, target item.PlanningStatus) (item.ProductItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.planning.product",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.String("target", string(target))))
	defer span.End()

	product, err := s.store.GetProductItem(ctx, itemID)
	if err != nil {
		return item.ProductItem{}, err
	}
	updated, err := item.ApplyProductPlanning(product, target, s.now)
	if err != nil {
		return item.ProductItem{}, err
	}
	if updated.Planning == product.Planning {
		return updated, nil
	}
	if err := s.store.UpdateProductItem(ctx, updated); err != nil {
		return item.ProductItem{}, err
	}
	return updated, nil
}

// ApplyServicePlanning loads a service item, applies a planning transition,
// and persists the result.
func (s *Service) ApplyServicePlanning(ctx context.Context, itemID string, target item.PlanningStatus) (item.ServiceItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.planning.service",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.String("target", string(target))))
	defer span.End()

	service, err := s.store.GetServiceItem(ctx, itemID)
	if err != nil {
		return item.ServiceItem{}, err
	}
	updated, err := item.ApplyServicePlanning(service, target, s.now)
	if err != nil {
		return item.ServiceItem{}, err
	}
	if updated.Planning == service.Planning {
		return updated, nil
	}
	if err := s.store.UpdateServiceItem(ctx, updated); err != nil {
		return item.ServiceItem{}, err
	}
	return updated, nil
}

// AssignToRoom moves a wishlist product into a room with a coupled choice
// of main or variant. Ownership and status change in one update.
func (s *Service) AssignToRoom(ctx context.Context, itemID, roomID string, target item.PlanningStatus) (item.ProductItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.assign_to_room",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.String("room.id", roomID)))
	defer span.End()

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return item.ProductItem{}, err
	}
	product, err := s.store.GetProductItem(ctx, itemID)
	if err != nil {
		return item.ProductItem{}, err
	}
	updated, err := item.AssignToRoom(product, roomID, target, s.now)
	if err != nil {
		return item.ProductItem{}, err
	}
	if err := s.store.UpdateProductItem(ctx, updated); err != nil {
		return item.ProductItem{}, err
	}
	return updated, nil
}

// ApplyProductFulfillment loads a product, applies a fulfillment
// transition, and persists the result.
func (s *Service) ApplyProductFulfillment(ctx context.Context, itemID string, target item.FulfillmentStatus) (item.ProductItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.fulfillment.product",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.String("target", string(target))))
	defer span.End()

	product, err := s.store.GetProductItem(ctx, itemID)
	if err != nil {
		return item.ProductItem{}, err
	}
	updated, err := item.ApplyProductFulfillment(product, target, s.now)
	if err != nil {
		return item.ProductItem{}, err
	}
	if updated.Fulfillment == product.Fulfillment {
		return updated, nil
	}
	if err := s.store.UpdateProductItem(ctx, updated); err != nil {
		return item.ProductItem{}, err
	}
	return updated, nil
}

// ApplyServiceFulfillment loads a service item, applies a fulfillment
// transition, and persists the result.
func (s *Service) ApplyServiceFulfillment(ctx context.Context, itemID string, target item.FulfillmentStatus) (item.ServiceItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.fulfillment.service",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.String("target", string(target))))
	defer span.End()

	service, err := s.store.GetServiceItem(ctx, itemID)
	if err != nil {
		return item.ServiceItem{}, err
	}
	updated, err := item.ApplyServiceFulfillment(service, target, s.now)
	if err != nil {
		return item.ServiceItem{}, err
	}
	if updated.Fulfillment == service.Fulfillment {
		return updated, nil
	}
	if err := s.store.UpdateServiceItem(ctx, updated); err != nil {
		return item.ServiceItem{}, err
	}
	return updated, nil
}

// Revoke returns an approved service item to planned. Only services
// support revoke; products report UnsupportedOperation.
func (s *Service) Revoke(ctx context.Context, ref ItemRef) (item.ServiceItem, error) {
	ctx, span := s.tracer.Start(ctx, "budget.revoke",
		trace.WithAttributes(attribute.String("item.id", ref.ID)))
	defer span.End()

	if !ref.Kind.SupportsRevoke() {
		return item.ServiceItem{}, apperrors.WithMetadata(apperrors.CodeUnsupportedOperation, "revoke is not supported for this item kind", map[string]string{
			"item_id": ref.ID,
			"kind":    string(ref.Kind),
		})
	}
	service, err := s.store.GetServiceItem(ctx, ref.ID)
	if err != nil {
		return item.ServiceItem{}, err
	}
	updated, err := item.RevokeServiceApproval(service, s.now)
	if err != nil {
		return item.ServiceItem{}, err
	}
	if err := s.store.UpdateServiceItem(ctx, updated); err != nil {
		return item.ServiceItem{}, err
	}
	return updated, nil
}

// CreateProductItem validates and persists a new product item.
func (s *Service) CreateProductItem(ctx context.Context, input item.CreateProductItemInput) (item.ProductItem, error) {
	product, err := item.CreateProductItem(input, s.now, nil)
	if err != nil {
		return item.ProductItem{}, err
	}
	if err := s.store.CreateProductItem(ctx, product); err != nil {
		return item.ProductItem{}, err
	}
	return product, nil
}

// CreateServiceItem validates and persists a new service item.
func (s *Service) CreateServiceItem(ctx context.Context, input item.CreateServiceItemInput) (item.ServiceItem, error) {
	service, err := item.CreateServiceItem(input, s.now, nil)
	if err != nil {
		return item.ServiceItem{}, err
	}
	if err := s.store.CreateServiceItem(ctx, service); err != nil {
		return item.ServiceItem{}, err
	}
	return service, nil
}

// DeleteItem removes a line item. Deletion is unconditional: approved and
// paid items delete like any other.
func (s *Service) DeleteItem(ctx context.Context, ref ItemRef) error {
	switch ref.Kind {
	case item.KindProduct:
		return s.store.DeleteProductItem(ctx, ref.ID)
	case item.KindService:
		return s.store.DeleteServiceItem(ctx, ref.ID)
	default:
		return apperrors.WithMetadata(apperrors.CodeUnsupportedOperation, "unknown item kind", map[string]string{
			"kind": string(ref.Kind),
		})
	}
}
