package item

import (
	"time"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
)

// FulfillmentStatus tracks procurement, payment, and delivery of an item
// once it has been approved.
type FulfillmentStatus string

const (
	FulfillmentUnspecified FulfillmentStatus = ""

	FulfillmentToOrder     FulfillmentStatus = "to_order"
	FulfillmentOrdered     FulfillmentStatus = "ordered"
	FulfillmentToPay       FulfillmentStatus = "to_pay"
	FulfillmentPaid        FulfillmentStatus = "paid"
	FulfillmentAdvancePaid FulfillmentStatus = "advance_paid"
	FulfillmentReceived    FulfillmentStatus = "received"
	FulfillmentDelivered   FulfillmentStatus = "delivered"
	FulfillmentReturned    FulfillmentStatus = "returned"
	FulfillmentInProgress  FulfillmentStatus = "in_progress"
	FulfillmentCompleted   FulfillmentStatus = "completed"
)

// isProductFulfillmentStatus reports whether the status belongs to the
// product fulfillment value set.
func isProductFulfillmentStatus(status FulfillmentStatus) bool {
	switch status {
	case FulfillmentToOrder, FulfillmentOrdered, FulfillmentPaid, FulfillmentDelivered, FulfillmentReturned:
		return true
	default:
		return false
	}
}

// isServiceFulfillmentStatus reports whether the status belongs to the
// fulfillment value set of the service category.
func isServiceFulfillmentStatus(category ServiceCategory, status FulfillmentStatus) bool {
	switch category {
	case ServiceCategoryMaterial:
		switch status {
		case FulfillmentToOrder, FulfillmentOrdered, FulfillmentToPay, FulfillmentPaid,
			FulfillmentAdvancePaid, FulfillmentReceived, FulfillmentCompleted:
			return true
		}
	case ServiceCategoryLabor:
		switch status {
		case FulfillmentToOrder, FulfillmentOrdered, FulfillmentPaid, FulfillmentInProgress, FulfillmentCompleted:
			return true
		}
	}
	return false
}

// ApplyProductFulfillment validates and applies a fulfillment transition
// for a product item. The item must be approved; between fulfillment states
// there is no ordering constraint, so any product fulfillment state can
// move to any other.
func ApplyProductFulfillment(product ProductItem, target FulfillmentStatus, now func() time.Time) (ProductItem, error) {
	if now == nil {
		now = time.Now
	}
	if product.EffectivePlanning() != PlanningApproved {
		return product, apperrors.WithMetadata(apperrors.CodeNotApproved, "fulfillment requires an approved item", map[string]string{
			"item_id":  product.ID,
			"planning": string(product.Planning),
		})
	}
	if !isProductFulfillmentStatus(target) {
		return product, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "unknown product fulfillment status", map[string]string{
			"item_id": product.ID,
			"target":  string(target),
		})
	}
	if target == product.Fulfillment {
		return product, nil
	}

	product.Fulfillment = target
	product.UpdatedAt = now().UTC()
	return product, nil
}

// ApplyServiceFulfillment validates and applies a fulfillment transition
// for a service item against its category-specific value set.
func ApplyServiceFulfillment(service ServiceItem, target FulfillmentStatus, now func() time.Time) (ServiceItem, error) {
	if now == nil {
		now = time.Now
	}
	if service.Planning != PlanningApproved {
		return service, apperrors.WithMetadata(apperrors.CodeNotApproved, "fulfillment requires an approved item", map[string]string{
			"item_id":  service.ID,
			"planning": string(service.Planning),
		})
	}
	if !isServiceFulfillmentStatus(service.Category, target) {
		return service, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "fulfillment status not valid for service category", map[string]string{
			"item_id":  service.ID,
			"category": string(service.Category),
			"target":   string(target),
		})
	}
	if target == service.Fulfillment {
		return service, nil
	}

	service.Fulfillment = target
	service.UpdatedAt = now().UTC()
	return service, nil
}
