package item

import (
	"strings"
	"time"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/id"
)

// Kind identifies the line-item kind.
type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// SupportsRevoke reports whether approval can be revoked for this kind.
// Services can return from approved to planned; products cannot.
func (k Kind) SupportsRevoke() bool {
	return k == KindService
}

// OwnerKind identifies which container owns a product item.
type OwnerKind string

const (
	OwnerKindRoom     OwnerKind = "room"
	OwnerKindWishlist OwnerKind = "wishlist"
)

// Owner is the tagged union of product ownership: exactly one of a room or
// a wishlist. The zero value means "no owner" and is never valid for an
// active item.
type Owner struct {
	kind OwnerKind
	id   string
}

// RoomOwner returns an owner reference for a room.
func RoomOwner(roomID string) Owner {
	return Owner{kind: OwnerKindRoom, id: strings.TrimSpace(roomID)}
}

// WishlistOwner returns an owner reference for a wishlist.
func WishlistOwner(wishlistID string) Owner {
	return Owner{kind: OwnerKindWishlist, id: strings.TrimSpace(wishlistID)}
}

// Kind returns the owner kind.
func (o Owner) Kind() OwnerKind {
	return o.kind
}

// ID returns the owning container id.
func (o Owner) ID() string {
	return o.id
}

// RoomID returns the owning room id when the owner is a room.
func (o Owner) RoomID() (string, bool) {
	if o.kind != OwnerKindRoom {
		return "", false
	}
	return o.id, true
}

// WishlistID returns the owning wishlist id when the owner is a wishlist.
func (o Owner) WishlistID() (string, bool) {
	if o.kind != OwnerKindWishlist {
		return "", false
	}
	return o.id, true
}

// IsZero reports whether the owner reference is unset.
func (o Owner) IsZero() bool {
	return o.kind == "" || o.id == ""
}

// ProductItem is a purchasable line item owned by a room or a wishlist.
// All money values are integer minor currency units.
type ProductItem struct {
	ID          string
	Name        string
	Category    Category
	UnitPrice   int64
	Quantity    int64
	AmountPaid  int64
	Owner       Owner
	Planning    PlanningStatus
	Fulfillment FulfillmentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cost returns the estimated cost of the product line (unit price times quantity).
func (p ProductItem) Cost() int64 {
	return p.UnitPrice * p.Quantity
}

// EffectivePlanning returns the planning status used by all read paths.
// A room-owned product persisted as liked is a legacy row: liked is a
// wishlist-only state, so reads treat it as variant. The stored value is
// never rewritten by reads.
func (p ProductItem) EffectivePlanning() PlanningStatus {
	if p.Planning == PlanningLiked {
		if _, ok := p.Owner.RoomID(); ok {
			return PlanningVariant
		}
	}
	return p.Planning
}

// IsSpent reports whether the product counts as committed money: paid or
// delivered fulfillment.
func (p ProductItem) IsSpent() bool {
	return p.Fulfillment == FulfillmentPaid || p.Fulfillment == FulfillmentDelivered
}

// ServiceCategory identifies the fixed service item categories.
type ServiceCategory string

const (
	ServiceCategoryMaterial ServiceCategory = "material"
	ServiceCategoryLabor    ServiceCategory = "labor"
)

// MaterialDetails carries the material-specific service fields.
type MaterialDetails struct {
	Unit         string
	Quantity     int64
	MaterialType string
}

// LaborDetails carries the labor-specific service fields.
type LaborDetails struct {
	Subcontractor string
	Scope         string
	DurationDays  int
}

// ServiceItem is a contracted line item owned by a project, optionally
// narrowed to a room. Exactly one of Material or Labor is meaningful,
// selected by Category.
type ServiceItem struct {
	ID          string
	ProjectID   string
	RoomID      string
	Name        string
	Category    ServiceCategory
	Price       int64
	Planning    PlanningStatus
	Fulfillment FulfillmentStatus
	Material    MaterialDetails
	Labor       LaborDetails
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProductItemInput describes the fields needed to create a product item.
type CreateProductItemInput struct {
	Name      string
	Category  Category
	UnitPrice int64
	Quantity  int64
	Owner     Owner
}

// CreateProductItem creates a product item with a generated ID and timestamps.
// Wishlist-owned products start liked; room-owned products start as variant
// candidates.
func CreateProductItem(input CreateProductItemInput, now func() time.Time, idGenerator func() (string, error)) (ProductItem, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateProductItemInput(input)
	if err != nil {
		return ProductItem{}, err
	}

	itemID, err := idGenerator()
	if err != nil {
		return ProductItem{}, apperrors.Wrap(apperrors.CodeUnknown, "generate product item id", err)
	}

	planning := PlanningVariant
	if normalized.Owner.Kind() == OwnerKindWishlist {
		planning = PlanningLiked
	}

	createdAt := now().UTC()
	return ProductItem{
		ID:          itemID,
		Name:        normalized.Name,
		Category:    normalized.Category,
		UnitPrice:   normalized.UnitPrice,
		Quantity:    normalized.Quantity,
		Owner:       normalized.Owner,
		Planning:    planning,
		Fulfillment: FulfillmentToOrder,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateProductItemInput trims and validates product item input.
func NormalizeCreateProductItemInput(input CreateProductItemInput) (CreateProductItemInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateProductItemInput{}, apperrors.New(apperrors.CodeItemNameEmpty, "product name is required")
	}
	if input.UnitPrice < 0 {
		return CreateProductItemInput{}, apperrors.New(apperrors.CodeItemPriceNegative, "unit price must not be negative")
	}
	if input.Quantity <= 0 {
		return CreateProductItemInput{}, apperrors.New(apperrors.CodeItemQuantityInvalid, "quantity must be positive")
	}
	if input.Owner.IsZero() {
		return CreateProductItemInput{}, apperrors.New(apperrors.CodeItemOwnerInvalid, "product owner is required")
	}
	if input.Category == "" {
		input.Category = CategoryOther
	}
	return input, nil
}

// CreateServiceItemInput describes the fields needed to create a service item.
type CreateServiceItemInput struct {
	ProjectID string
	RoomID    string
	Name      string
	Category  ServiceCategory
	Price     int64
	Material  MaterialDetails
	Labor     LaborDetails
}

// CreateServiceItem creates a service item with a generated ID and timestamps.
// Service items start in draft.
func CreateServiceItem(input CreateServiceItemInput, now func() time.Time, idGenerator func() (string, error)) (ServiceItem, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateServiceItemInput(input)
	if err != nil {
		return ServiceItem{}, err
	}

	itemID, err := idGenerator()
	if err != nil {
		return ServiceItem{}, apperrors.Wrap(apperrors.CodeUnknown, "generate service item id", err)
	}

	createdAt := now().UTC()
	return ServiceItem{
		ID:          itemID,
		ProjectID:   normalized.ProjectID,
		RoomID:      normalized.RoomID,
		Name:        normalized.Name,
		Category:    normalized.Category,
		Price:       normalized.Price,
		Planning:    PlanningDraft,
		Fulfillment: FulfillmentToOrder,
		Material:    normalized.Material,
		Labor:       normalized.Labor,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateServiceItemInput trims and validates service item input.
func NormalizeCreateServiceItemInput(input CreateServiceItemInput) (CreateServiceItemInput, error) {
	input.ProjectID = strings.TrimSpace(input.ProjectID)
	input.RoomID = strings.TrimSpace(input.RoomID)
	input.Name = strings.TrimSpace(input.Name)
	if input.ProjectID == "" {
		return CreateServiceItemInput{}, apperrors.New(apperrors.CodeProjectIDEmpty, "project id is required")
	}
	if input.Name == "" {
		return CreateServiceItemInput{}, apperrors.New(apperrors.CodeItemNameEmpty, "service name is required")
	}
	if input.Category != ServiceCategoryMaterial && input.Category != ServiceCategoryLabor {
		return CreateServiceItemInput{}, apperrors.New(apperrors.CodeServiceInvalidCategory, "service category must be material or labor")
	}
	if input.Price < 0 {
		return CreateServiceItemInput{}, apperrors.New(apperrors.CodeItemPriceNegative, "price must not be negative")
	}
	switch input.Category {
	case ServiceCategoryMaterial:
		input.Labor = LaborDetails{}
	case ServiceCategoryLabor:
		input.Material = MaterialDetails{}
	}
	return input, nil
}
