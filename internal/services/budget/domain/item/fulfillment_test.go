package item

import (
	"testing"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
)

func TestApplyProductFulfillmentRequiresApproval(t *testing.T) {
	for _, planning := range []PlanningStatus{PlanningMain, PlanningVariant, PlanningRejected} {
		_, err := ApplyProductFulfillment(roomProduct(planning), FulfillmentOrdered, testNow)
		assertCode(t, err, apperrors.CodeNotApproved)
	}
}

func TestApplyProductFulfillmentIsPermissive(t *testing.T) {
	// No ordering constraint between fulfillment states: delivered can go
	// back to ordered, returned can go anywhere.
	tests := []struct {
		from FulfillmentStatus
		to   FulfillmentStatus
	}{
		{FulfillmentToOrder, FulfillmentOrdered},
		{FulfillmentOrdered, FulfillmentPaid},
		{FulfillmentPaid, FulfillmentDelivered},
		{FulfillmentDelivered, FulfillmentOrdered},
		{FulfillmentOrdered, FulfillmentReturned},
		{FulfillmentReturned, FulfillmentToOrder},
		{FulfillmentToOrder, FulfillmentDelivered},
	}
	for _, tc := range tests {
		product := roomProduct(PlanningApproved)
		product.Fulfillment = tc.from
		updated, err := ApplyProductFulfillment(product, tc.to, testNow)
		if err != nil {
			t.Fatalf("%s -> %s: %v", tc.from, tc.to, err)
		}
		if updated.Fulfillment != tc.to {
			t.Fatalf("fulfillment = %s, want %s", updated.Fulfillment, tc.to)
		}
	}
}

func TestApplyProductFulfillmentRejectsForeignStatuses(t *testing.T) {
	product := roomProduct(PlanningApproved)
	for _, target := range []FulfillmentStatus{FulfillmentToPay, FulfillmentInProgress, FulfillmentCompleted, "shipped"} {
		_, err := ApplyProductFulfillment(product, target, testNow)
		assertCode(t, err, apperrors.CodeInvalidTransition)
	}
}

func TestApplyServiceFulfillmentByCategory(t *testing.T) {
	material := serviceItem(PlanningApproved)
	material.Category = ServiceCategoryMaterial

	for _, target := range []FulfillmentStatus{
		FulfillmentToOrder, FulfillmentOrdered, FulfillmentToPay, FulfillmentPaid,
		FulfillmentAdvancePaid, FulfillmentReceived, FulfillmentCompleted,
	} {
		if _, err := ApplyServiceFulfillment(material, target, testNow); err != nil {
			t.Fatalf("material -> %s: %v", target, err)
		}
	}
	if _, err := ApplyServiceFulfillment(material, FulfillmentInProgress, testNow); err == nil {
		t.Fatal("in_progress is a labor status, expected error for material")
	}

	labor := serviceItem(PlanningApproved)
	for _, target := range []FulfillmentStatus{
		FulfillmentToOrder, FulfillmentOrdered, FulfillmentPaid, FulfillmentInProgress, FulfillmentCompleted,
	} {
		if _, err := ApplyServiceFulfillment(labor, target, testNow); err != nil {
			t.Fatalf("labor -> %s: %v", target, err)
		}
	}
	if _, err := ApplyServiceFulfillment(labor, FulfillmentReceived, testNow); err == nil {
		t.Fatal("received is a material status, expected error for labor")
	}
}

func TestApplyServiceFulfillmentRequiresApproval(t *testing.T) {
	_, err := ApplyServiceFulfillment(serviceItem(PlanningPlanned), FulfillmentOrdered, testNow)
	assertCode(t, err, apperrors.CodeNotApproved)
}

func TestProductIsSpent(t *testing.T) {
	product := roomProduct(PlanningApproved)
	for status, want := range map[FulfillmentStatus]bool{
		FulfillmentToOrder:   false,
		FulfillmentOrdered:   false,
		FulfillmentPaid:      true,
		FulfillmentDelivered: true,
		FulfillmentReturned:  false,
	} {
		product.Fulfillment = status
		if product.IsSpent() != want {
			t.Fatalf("IsSpent with %s = %v, want %v", status, product.IsSpent(), want)
		}
	}
}
