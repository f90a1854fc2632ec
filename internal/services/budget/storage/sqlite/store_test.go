package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedProject(t *testing.T, store *Store, projectID string) {
	t.Helper()
	ctx := context.Background()
	if err := store.CreateProject(ctx, storage.ProjectRecord{ID: projectID, Name: "Apartment 12", BudgetGoal: 100000}); err != nil {
		t.Fatalf("create project: %v", err)
	}
}

func seedRoom(t *testing.T, store *Store, projectID, roomID string) {
	t.Helper()
	ctx := context.Background()
	if err := store.CreateRoom(ctx, storage.RoomRecord{ID: roomID, ProjectID: projectID, Name: "Living room", BudgetGoal: 20000}); err != nil {
		t.Fatalf("create room: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestProjectRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")

	project, err := store.GetProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.Name != "Apartment 12" {
		t.Fatalf("name = %q, want Apartment 12", project.Name)
	}
	if project.BudgetGoal != 100000 {
		t.Fatalf("budget goal = %d, want 100000", project.BudgetGoal)
	}
	if project.CreatedAt.IsZero() {
		t.Fatal("expected created at to be set")
	}

	if _, err := store.GetProject(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomsListOrdered(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, roomID := range []string{"room-a", "room-b", "room-c"} {
		record := storage.RoomRecord{
			ID:        roomID,
			ProjectID: "proj-1",
			Name:      "Room " + roomID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.CreateRoom(ctx, record); err != nil {
			t.Fatalf("create room %s: %v", roomID, err)
		}
	}

	rooms, err := store.ListRooms(ctx, "proj-1")
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	for i, want := range []string{"room-a", "room-b", "room-c"} {
		if rooms[i].ID != want {
			t.Fatalf("room[%d] = %s, want %s", i, rooms[i].ID, want)
		}
	}
}

func TestProductItemRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")
	seedRoom(t, store, "proj-1", "room-1")

	created := item.ProductItem{
		ID:          "prod-1",
		Name:        "Oak table",
		Category:    item.CategoryFurniture,
		UnitPrice:   1000,
		Quantity:    2,
		Owner:       item.RoomOwner("room-1"),
		Planning:    item.PlanningMain,
		Fulfillment: item.FulfillmentToOrder,
	}
	if err := store.CreateProductItem(ctx, created); err != nil {
		t.Fatalf("create product item: %v", err)
	}

	got, err := store.GetProductItem(ctx, "prod-1")
	if err != nil {
		t.Fatalf("get product item: %v", err)
	}
	if got.Name != "Oak table" || got.Cost() != 2000 {
		t.Fatalf("unexpected product: %+v", got)
	}
	roomID, ok := got.Owner.RoomID()
	if !ok || roomID != "room-1" {
		t.Fatalf("owner = %v, want room-1", got.Owner)
	}
	if got.Planning != item.PlanningMain {
		t.Fatalf("planning = %s, want %s", got.Planning, item.PlanningMain)
	}

	got.Planning = item.PlanningApproved
	got.Fulfillment = item.FulfillmentPaid
	got.UpdatedAt = time.Now().UTC()
	if err := store.UpdateProductItem(ctx, got); err != nil {
		t.Fatalf("update product item: %v", err)
	}
	updated, err := store.GetProductItem(ctx, "prod-1")
	if err != nil {
		t.Fatalf("get updated product item: %v", err)
	}
	if updated.Planning != item.PlanningApproved || updated.Fulfillment != item.FulfillmentPaid {
		t.Fatalf("unexpected updated product: %+v", updated)
	}
}

func TestProductItemWishlistOwner(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateWishlist(ctx, storage.WishlistRecord{ID: "wish-1", Name: "Ideas"}); err != nil {
		t.Fatalf("create wishlist: %v", err)
	}
	created := item.ProductItem{
		ID:        "prod-w",
		Name:      "Velvet armchair",
		Category:  item.CategoryFurniture,
		UnitPrice: 300,
		Quantity:  1,
		Owner:     item.WishlistOwner("wish-1"),
		Planning:  item.PlanningLiked,
	}
	if err := store.CreateProductItem(ctx, created); err != nil {
		t.Fatalf("create product item: %v", err)
	}

	got, err := store.GetProductItem(ctx, "prod-w")
	if err != nil {
		t.Fatalf("get product item: %v", err)
	}
	wishlistID, ok := got.Owner.WishlistID()
	if !ok || wishlistID != "wish-1" {
		t.Fatalf("owner = %v, want wishlist wish-1", got.Owner)
	}
}

func TestListProductItemsFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")
	seedRoom(t, store, "proj-1", "room-1")
	if err := store.CreateRoom(ctx, storage.RoomRecord{ID: "room-2", ProjectID: "proj-1", Name: "Bedroom"}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if err := store.CreateWishlist(ctx, storage.WishlistRecord{ID: "wish-1", Name: "Ideas"}); err != nil {
		t.Fatalf("create wishlist: %v", err)
	}

	items := []item.ProductItem{
		{ID: "p1", Name: "Table", Category: item.CategoryFurniture, UnitPrice: 1, Quantity: 1, Owner: item.RoomOwner("room-1"), Planning: item.PlanningMain},
		{ID: "p2", Name: "Lamp", Category: item.CategoryOther, UnitPrice: 1, Quantity: 1, Owner: item.RoomOwner("room-2"), Planning: item.PlanningVariant},
		{ID: "p3", Name: "Rug", Category: item.CategoryOther, UnitPrice: 1, Quantity: 1, Owner: item.WishlistOwner("wish-1"), Planning: item.PlanningLiked},
	}
	for _, p := range items {
		if err := store.CreateProductItem(ctx, p); err != nil {
			t.Fatalf("create product %s: %v", p.ID, err)
		}
	}

	byRoom, err := store.ListProductItems(ctx, storage.ProductFilter{RoomID: "room-1"})
	if err != nil {
		t.Fatalf("list by room: %v", err)
	}
	if len(byRoom) != 1 || byRoom[0].ID != "p1" {
		t.Fatalf("by room = %+v, want [p1]", byRoom)
	}

	byWishlist, err := store.ListProductItems(ctx, storage.ProductFilter{WishlistID: "wish-1"})
	if err != nil {
		t.Fatalf("list by wishlist: %v", err)
	}
	if len(byWishlist) != 1 || byWishlist[0].ID != "p3" {
		t.Fatalf("by wishlist = %+v, want [p3]", byWishlist)
	}

	byProject, err := store.ListProductItems(ctx, storage.ProductFilter{ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("list by project: %v", err)
	}
	if len(byProject) != 2 {
		t.Fatalf("by project returned %d items, want 2 (wishlist excluded)", len(byProject))
	}
}

func TestServiceItemRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")
	seedRoom(t, store, "proj-1", "room-1")

	created := item.ServiceItem{
		ID:          "svc-1",
		ProjectID:   "proj-1",
		RoomID:      "room-1",
		Name:        "Floor screed",
		Category:    item.ServiceCategoryMaterial,
		Price:       1500,
		Planning:    item.PlanningPlanned,
		Fulfillment: item.FulfillmentToOrder,
		Material:    item.MaterialDetails{Unit: "m2", Quantity: 40, MaterialType: "anhydrite"},
	}
	if err := store.CreateServiceItem(ctx, created); err != nil {
		t.Fatalf("create service item: %v", err)
	}

	got, err := store.GetServiceItem(ctx, "svc-1")
	if err != nil {
		t.Fatalf("get service item: %v", err)
	}
	if got.Material.Unit != "m2" || got.Material.Quantity != 40 {
		t.Fatalf("material details = %+v", got.Material)
	}
	if got.RoomID != "room-1" {
		t.Fatalf("room id = %q, want room-1", got.RoomID)
	}

	got.Planning = item.PlanningApproved
	got.UpdatedAt = time.Now().UTC()
	if err := store.UpdateServiceItem(ctx, got); err != nil {
		t.Fatalf("update service item: %v", err)
	}
	updated, err := store.GetServiceItem(ctx, "svc-1")
	if err != nil {
		t.Fatalf("get updated service item: %v", err)
	}
	if updated.Planning != item.PlanningApproved {
		t.Fatalf("planning = %s, want %s", updated.Planning, item.PlanningApproved)
	}
}

func TestListServiceItemsRoomNarrow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")
	seedRoom(t, store, "proj-1", "room-1")

	services := []item.ServiceItem{
		{ID: "s1", ProjectID: "proj-1", RoomID: "room-1", Name: "Screed", Category: item.ServiceCategoryMaterial, Planning: item.PlanningPlanned},
		{ID: "s2", ProjectID: "proj-1", Name: "Painting", Category: item.ServiceCategoryLabor, Planning: item.PlanningDraft},
	}
	for _, svc := range services {
		if err := store.CreateServiceItem(ctx, svc); err != nil {
			t.Fatalf("create service %s: %v", svc.ID, err)
		}
	}

	all, err := store.ListServiceItems(ctx, "proj-1", "")
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 services, got %d", len(all))
	}
	if all[1].RoomID != "" {
		t.Fatalf("project-wide service room id = %q, want empty", all[1].RoomID)
	}

	narrowed, err := store.ListServiceItems(ctx, "proj-1", "room-1")
	if err != nil {
		t.Fatalf("list narrowed services: %v", err)
	}
	if len(narrowed) != 1 || narrowed[0].ID != "s1" {
		t.Fatalf("narrowed = %+v, want [s1]", narrowed)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedProject(t, store, "proj-1")
	seedRoom(t, store, "proj-1", "room-1")

	approved := item.ProductItem{
		ID:          "prod-1",
		Name:        "Sofa",
		Category:    item.CategoryFurniture,
		UnitPrice:   100,
		Quantity:    1,
		Owner:       item.RoomOwner("room-1"),
		Planning:    item.PlanningApproved,
		Fulfillment: item.FulfillmentPaid,
	}
	if err := store.CreateProductItem(ctx, approved); err != nil {
		t.Fatalf("create product item: %v", err)
	}

	// No planning-status guard: approved and paid items delete like any other.
	if err := store.DeleteProductItem(ctx, "prod-1"); err != nil {
		t.Fatalf("delete approved product: %v", err)
	}
	if _, err := store.GetProductItem(ctx, "prod-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.DeleteProductItem(ctx, "prod-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}
