package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/matthiaskaminski/platforma-mvp-sub000/internal/platform/errors"
	"github.com/matthiaskaminski/platforma-mvp-sub000/internal/services/budget/domain/item"
)

// BatchFailure reports one failed transition within a batch.
type BatchFailure struct {
	ID  string
	Err error
}

// BatchResult partitions a batch approval into per-item outcomes, in the
// order the refs were given.
type BatchResult struct {
	SucceededIDs []string
	Failed       []BatchFailure
}

// ApproveBatch approves every referenced item concurrently. Each transition
// is an independent step: items approved before a later failure stay
// approved, and there is no compensation or rollback. A started transition
// always runs to completion; the batch only reports the partitioned result.
func (s *Service) ApproveBatch(ctx context.Context, refs []ItemRef) BatchResult {
	ctx, span := s.tracer.Start(ctx, "budget.approve_batch",
		trace.WithAttributes(attribute.Int("batch.size", len(refs))))
	defer span.End()

	outcomes := make([]error, len(refs))
	g := new(errgroup.Group)
	for i, ref := range refs {
		g.Go(func() error {
			outcomes[i] = s.approveOne(ctx, ref)
			return nil
		})
	}
	// Errors surface through outcomes, never through the group: one failed
	// item must not short-circuit its siblings.
	_ = g.Wait()

	var result BatchResult
	for i, ref := range refs {
		if outcomes[i] != nil {
			result.Failed = append(result.Failed, BatchFailure{ID: ref.ID, Err: outcomes[i]})
			continue
		}
		result.SucceededIDs = append(result.SucceededIDs, ref.ID)
	}
	return result
}

func (s *Service) approveOne(ctx context.Context, ref ItemRef) error {
	switch ref.Kind {
	case item.KindProduct:
		_, err := s.ApplyProductPlanning(ctx, ref.ID, item.PlanningApproved)
		return err
	case item.KindService:
		_, err := s.ApplyServicePlanning(ctx, ref.ID, item.PlanningApproved)
		return err
	default:
		return apperrors.WithMetadata(apperrors.CodeUnsupportedOperation, "unknown item kind", map[string]string{
			"item_id": ref.ID,
			"kind":    string(ref.Kind),
		})
	}
}
