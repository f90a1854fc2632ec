// Package budget parses budget command flags and runs budget operations.
package budget

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	entrypoint "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/cmd"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/app"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/budget"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
	budgetsqlite "github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/storage/sqlite"
)

// Config holds budget command configuration.
type Config struct {
	DBPath string `env:"PLATFORMA_BUDGET_DB_PATH"`

	// Command and Args come from the positional command line.
	Command string
	Args    []string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the budget SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "budget.db")
	}
	rest := fs.Args()
	if len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}
	return cfg, nil
}

// Run executes one budget command against the store.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBudget, func(ctx context.Context) error {
		store, err := budgetsqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		service := app.NewService(store)
		switch cfg.Command {
		case "report":
			return runReport(ctx, service, cfg.Args)
		case "approve":
			return runApprove(ctx, service, cfg.Args)
		case "revoke":
			return runRevoke(ctx, service, cfg.Args)
		case "":
			return fmt.Errorf("a command is required: report, approve, or revoke")
		default:
			return fmt.Errorf("unknown command %q", cfg.Command)
		}
	})
}

func runReport(ctx context.Context, service *app.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: report <project-id>")
	}
	view, err := service.ComputeBudget(ctx, args[0])
	if err != nil {
		return err
	}
	printView(view)
	return nil
}

func runApprove(ctx context.Context, service *app.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: approve <kind:item-id> [<kind:item-id> ...]")
	}
	refs := make([]app.ItemRef, 0, len(args))
	for _, arg := range args {
		ref, err := parseItemRef(arg)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}

	result := service.ApproveBatch(ctx, refs)
	for _, id := range result.SucceededIDs {
		fmt.Printf("approved %s\n", id)
	}
	for _, failure := range result.Failed {
		fmt.Printf("failed %s: %v\n", failure.ID, failure.Err)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d items failed", len(result.Failed), len(refs))
	}
	return nil
}

func runRevoke(ctx context.Context, service *app.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: revoke <service-item-id>")
	}
	revoked, err := service.Revoke(ctx, app.ItemRef{ID: args[0], Kind: item.KindService})
	if err != nil {
		return err
	}
	fmt.Printf("revoked %s, planning is now %s\n", revoked.ID, revoked.Planning)
	return nil
}

func parseItemRef(arg string) (app.ItemRef, error) {
	kind, id, found := strings.Cut(arg, ":")
	if !found {
		return app.ItemRef{}, fmt.Errorf("item reference %q must be kind:id", arg)
	}
	switch item.Kind(kind) {
	case item.KindProduct, item.KindService:
		return app.ItemRef{ID: id, Kind: item.Kind(kind)}, nil
	default:
		return app.ItemRef{}, fmt.Errorf("unknown item kind %q", kind)
	}
}

func money(minor int64) string {
	return fmt.Sprintf("%.2f", float64(minor)/100)
}

func printView(view budget.View) {
	fmt.Printf("planned:   %s\n", money(view.Planned))
	fmt.Printf("spent:     %s (%d%%)\n", money(view.Spent), view.ProjectPercentage)
	fmt.Printf("remaining: %s\n", money(view.Remaining))
	fmt.Println("categories:")
	for _, category := range item.Categories() {
		fmt.Printf("  %-10s %s\n", category, money(view.Categories[category]))
	}
	if len(view.Rooms) > 0 {
		fmt.Println("rooms:")
		for _, room := range view.Rooms {
			fmt.Printf("  %-20s %s (%d%%)\n", room.Name, money(room.Spend), room.Percentage)
		}
	}
	fmt.Println("services:")
	fmt.Printf("  material planned %s, approved %s\n", money(view.Services.MaterialPlanned), money(view.Services.MaterialApproved))
	fmt.Printf("  labor planned %s, approved %s\n", money(view.Services.LaborPlanned), money(view.Services.LaborApproved))
}
