// Package budget computes estimated and actual budget rollups for a project.
//
// Compute is a pure single-pass function over a snapshot of items. Nothing
// here is cached or persisted: callers read the item store fresh and
// recompute, so the aggregate can never drift from the underlying items.
package budget

import (
	"math"

	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
)

// Project carries the project fields the rollup needs.
type Project struct {
	ID         string
	Name       string
	BudgetGoal int64
}

// Room carries the room fields the rollup needs.
type Room struct {
	ID         string
	Name       string
	BudgetGoal int64
}

// RoomContribution is one room's share of project spend. Only main-status
// products count: variants are unchosen alternatives, not committed spend.
type RoomContribution struct {
	RoomID     string
	Name       string
	BudgetGoal int64
	Spend      int64
	Percentage int
}

// ServiceBreakdown reports per-category service totals for callers that
// need finer granularity than the single planned/spent pair.
type ServiceBreakdown struct {
	MaterialPlanned  int64
	MaterialApproved int64
	LaborPlanned     int64
	LaborApproved    int64
}

// View is the computed budget rollup. It is a value object, never persisted.
type View struct {
	Planned           int64
	Spent             int64
	Remaining         int64
	ProjectPercentage int
	Categories        map[item.Category]int64
	Rooms             []RoomContribution
	Services          ServiceBreakdown
}

// Compute derives the budget view for a project from a snapshot of its
// rooms and items.
//
// Planned sums every product that is not rejected plus every planned or
// approved service. Spent sums products whose fulfillment is paid or
// delivered plus every approved service: approval alone commits a service's
// money. Draft and rejected services are excluded from every total.
func Compute(project Project, rooms []Room, products []item.ProductItem, services []item.ServiceItem) View {
	view := View{
		Categories: make(map[item.Category]int64, len(item.Categories())),
		Rooms:      make([]RoomContribution, 0, len(rooms)),
	}
	for _, category := range item.Categories() {
		view.Categories[category] = 0
	}

	roomSpend := make(map[string]int64, len(rooms))
	for _, product := range products {
		planning := product.EffectivePlanning()
		if planning == item.PlanningRejected {
			continue
		}
		cost := product.Cost()
		view.Planned += cost
		view.Categories[categoryBucket(product.Category)] += cost
		if product.IsSpent() {
			view.Spent += cost
		}
		if planning == item.PlanningMain {
			if roomID, ok := product.Owner.RoomID(); ok {
				roomSpend[roomID] += cost
			}
		}
	}

	for _, service := range services {
		switch service.Planning {
		case item.PlanningPlanned:
			view.Planned += service.Price
			switch service.Category {
			case item.ServiceCategoryMaterial:
				view.Services.MaterialPlanned += service.Price
			case item.ServiceCategoryLabor:
				view.Services.LaborPlanned += service.Price
			}
		case item.PlanningApproved:
			view.Planned += service.Price
			view.Spent += service.Price
			switch service.Category {
			case item.ServiceCategoryMaterial:
				view.Services.MaterialApproved += service.Price
			case item.ServiceCategoryLabor:
				view.Services.LaborApproved += service.Price
			}
		}
	}

	for _, room := range rooms {
		spend := roomSpend[room.ID]
		view.Rooms = append(view.Rooms, RoomContribution{
			RoomID:     room.ID,
			Name:       room.Name,
			BudgetGoal: room.BudgetGoal,
			Spend:      spend,
			Percentage: percentage(spend, room.BudgetGoal),
		})
	}

	view.Remaining = project.BudgetGoal - view.Spent
	if view.Remaining < 0 {
		view.Remaining = 0
	}
	view.ProjectPercentage = percentage(view.Spent, project.BudgetGoal)
	return view
}

// categoryBucket guards against items persisted with an unknown category label.
func categoryBucket(category item.Category) item.Category {
	switch category {
	case item.CategoryMaterials, item.CategoryFurniture, item.CategoryLabor:
		return category
	default:
		return item.CategoryOther
	}
}

func percentage(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
