package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/repository"
)

const activityFeedSize = 100

type ActivityUsecase struct {
	repo   repository.ActivityRepository
	logger *slog.Logger
}

func NewActivityUsecase(repo repository.ActivityRepository, logger *slog.Logger) *ActivityUsecase {
	return &ActivityUsecase{repo: repo, logger: logger.With("component", "activity_usecase")}
}

// Record appends an entry. Failures are logged and swallowed so the caller's
// mutation is never rolled back over a missing feed entry.
func (u *ActivityUsecase) Record(ctx context.Context, actor *domain.User, typ domain.ActivityType, action domain.ActivityAction, targetName string) {
	err := u.repo.Create(ctx, &domain.Activity{
		Type:       typ,
		Action:     action,
		TargetType: string(typ),
		TargetName: targetName,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
	})
	if err != nil {
		u.logger.WarnContext(ctx, "failed to record activity",
			"type", typ, "action", action, "target", targetName, "error", err)
	}
}

// Recent returns the newest entries first.
func (u *ActivityUsecase) Recent(ctx context.Context) ([]*domain.Activity, error) {
	items, err := u.repo.ListRecent(ctx, activityFeedSize)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return items, nil
}
