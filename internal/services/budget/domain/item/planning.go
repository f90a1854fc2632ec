package item

import (
	"time"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
)

// PlanningStatus classifies how a line item counts toward budget totals.
type PlanningStatus string

const (
	PlanningUnspecified PlanningStatus = ""

	// Product statuses.
	PlanningLiked   PlanningStatus = "liked"
	PlanningMain    PlanningStatus = "main"
	PlanningVariant PlanningStatus = "variant"

	// Service statuses.
	PlanningDraft   PlanningStatus = "draft"
	PlanningPlanned PlanningStatus = "planned"

	// Shared terminal decisions.
	PlanningApproved PlanningStatus = "approved"
	PlanningRejected PlanningStatus = "rejected"
)

// isProductPlanningStatus reports whether the status belongs to the product value set.
func isProductPlanningStatus(status PlanningStatus) bool {
	switch status {
	case PlanningLiked, PlanningMain, PlanningVariant, PlanningApproved, PlanningRejected:
		return true
	default:
		return false
	}
}

// isServicePlanningStatus reports whether the status belongs to the service value set.
func isServicePlanningStatus(status PlanningStatus) bool {
	switch status {
	case PlanningDraft, PlanningPlanned, PlanningApproved, PlanningRejected:
		return true
	default:
		return false
	}
}

// isProductPlanningTransitionAllowed enforces the room-owned product planning graph.
// Approved is terminal for products; a rejected product can be re-candidated.
func isProductPlanningTransitionAllowed(from, to PlanningStatus) bool {
	switch from {
	case PlanningMain:
		return to == PlanningVariant || to == PlanningApproved || to == PlanningRejected
	case PlanningVariant:
		return to == PlanningMain || to == PlanningApproved || to == PlanningRejected
	case PlanningRejected:
		return to == PlanningMain || to == PlanningVariant
	default:
		return false
	}
}

// isServicePlanningTransitionAllowed enforces the service planning graph.
// Approved leaves only via RevokeServiceApproval.
func isServicePlanningTransitionAllowed(from, to PlanningStatus) bool {
	switch from {
	case PlanningDraft:
		return to == PlanningPlanned
	case PlanningPlanned:
		return to == PlanningDraft || to == PlanningApproved || to == PlanningRejected
	case PlanningRejected:
		return to == PlanningPlanned
	default:
		return false
	}
}

// ApplyProductPlanning validates and applies a planning transition for a
// product item. A no-op transition (target equals the effective current
// status) returns the item unchanged. Either the whole transition succeeds
// or the item is returned untouched with an error.
func ApplyProductPlanning(product ProductItem, target PlanningStatus, now func() time.Time) (ProductItem, error) {
	if now == nil {
		now = time.Now
	}
	if !isProductPlanningStatus(target) {
		return product, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "unknown product planning status", map[string]string{
			"item_id": product.ID,
			"target":  string(target),
		})
	}

	if _, wishlistOwned := product.Owner.WishlistID(); wishlistOwned {
		if target == PlanningLiked {
			return product, nil
		}
		// main/variant imply a room owner; approval decisions happen after assignment.
		return product, apperrors.WithMetadata(apperrors.CodeOwnershipMismatch, "wishlist product must be assigned to a room first", map[string]string{
			"item_id": product.ID,
			"target":  string(target),
		})
	}

	if target == PlanningLiked {
		return product, apperrors.WithMetadata(apperrors.CodeOwnershipMismatch, "liked requires a wishlist owner", map[string]string{
			"item_id": product.ID,
		})
	}

	from := product.EffectivePlanning()
	if target == from {
		return product, nil
	}
	if !isProductPlanningTransitionAllowed(from, target) {
		return product, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "product planning transition not allowed", map[string]string{
			"item_id": product.ID,
			"from":    string(from),
			"target":  string(target),
		})
	}

	product.Planning = target
	product.UpdatedAt = now().UTC()
	return product, nil
}

// ApplyServicePlanning validates and applies a planning transition for a
// service item. A no-op transition returns the item unchanged.
func ApplyServicePlanning(service ServiceItem, target PlanningStatus, now func() time.Time) (ServiceItem, error) {
	if now == nil {
		now = time.Now
	}
	if !isServicePlanningStatus(target) {
		return service, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "unknown service planning status", map[string]string{
			"item_id": service.ID,
			"target":  string(target),
		})
	}
	if target == service.Planning {
		return service, nil
	}
	if !isServicePlanningTransitionAllowed(service.Planning, target) {
		return service, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "service planning transition not allowed", map[string]string{
			"item_id": service.ID,
			"from":    string(service.Planning),
			"target":  string(target),
		})
	}

	service.Planning = target
	service.UpdatedAt = now().UTC()
	return service, nil
}

// AssignToRoom moves a wishlist product into a room. The ownership change
// and the choice of main or variant are one coupled transition: no partial
// outcome exists.
func AssignToRoom(product ProductItem, roomID string, target PlanningStatus, now func() time.Time) (ProductItem, error) {
	if now == nil {
		now = time.Now
	}
	if _, wishlistOwned := product.Owner.WishlistID(); !wishlistOwned {
		return product, apperrors.WithMetadata(apperrors.CodeOwnershipMismatch, "product is already owned by a room", map[string]string{
			"item_id": product.ID,
		})
	}
	if target != PlanningMain && target != PlanningVariant {
		return product, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "room assignment requires main or variant", map[string]string{
			"item_id": product.ID,
			"target":  string(target),
		})
	}
	owner := RoomOwner(roomID)
	if owner.IsZero() {
		return product, apperrors.New(apperrors.CodeItemOwnerInvalid, "room id is required")
	}

	product.Owner = owner
	product.Planning = target
	product.UpdatedAt = now().UTC()
	return product, nil
}

// RevokeServiceApproval returns an approved service to planned. Only
// services support revoke; products surface UnsupportedOperation at the
// orchestration layer before reaching here.
func RevokeServiceApproval(service ServiceItem, now func() time.Time) (ServiceItem, error) {
	if now == nil {
		now = time.Now
	}
	if service.Planning != PlanningApproved {
		return service, apperrors.WithMetadata(apperrors.CodeInvalidTransition, "only approved services can be revoked", map[string]string{
			"item_id": service.ID,
			"from":    string(service.Planning),
		})
	}
	service.Planning = PlanningPlanned
	service.UpdatedAt = now().UTC()
	return service, nil
}
