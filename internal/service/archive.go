package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type ArchiveService interface {
	StateChanged(state entity.GameState)
	TurnChanged(playerID int)
	TileClaimed(row, column, playerID int, outcome entity.Outcome)
	MatchFinished(match *entity.MatchRecord)

	GetMatch(ctx context.Context, id string) (*entity.MatchRecord, error)
	RecentMatches(ctx context.Context, limit int64) ([]*entity.MatchRecord, error)
	Standings(ctx context.Context) ([]entity.Standing, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.MatchRecord, error)
}

type standingsRepo interface {
	Record(ctx context.Context, match *entity.MatchRecord) error
	List(ctx context.Context) ([]entity.Standing, error)
}

type archiveService struct {
	ctx     context.Context //nolint:containedctx // observer callbacks carry no context
	logger  *slog.Logger
	timeout time.Duration

	matchRepo     matchRepo
	standingsRepo standingsRepo
}

// NewArchiveService - creates an observer that persists every finished match. Writes are bound
// to ctx and cut off after timeout.
func NewArchiveService(ctx context.Context, logger *slog.Logger, timeout time.Duration, matchRepo matchRepo, standingsRepo standingsRepo) ArchiveService {
	return &archiveService{
		ctx:     ctx,
		logger:  logger.With("component", "archive"),
		timeout: timeout,

		matchRepo:     matchRepo,
		standingsRepo: standingsRepo,
	}
}

func (that *archiveService) StateChanged(entity.GameState) {}

func (that *archiveService) TurnChanged(int) {}

func (that *archiveService) TileClaimed(int, int, int, entity.Outcome) {}

// MatchFinished - stores the match log and updates the standings. Failures are logged, the
// game itself is never interrupted.
func (that *archiveService) MatchFinished(match *entity.MatchRecord) {
	log := that.logger.With("method", "MatchFinished", "matchID", match.ID)

	ctx, cancel := context.WithTimeout(that.ctx, that.timeout)
	defer cancel()

	archived := true

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		log.Error("failed to save match", "error", err)
		archived = false
	}

	if err := that.standingsRepo.Record(ctx, match); err != nil {
		log.Error("failed to record standings", "error", err)
		archived = false
	}

	if !archived {
		return
	}

	log.Info("match archived", "outcome", match.Outcome, "winner", match.WinnerIdentity())
}

func (that *archiveService) GetMatch(ctx context.Context, id string) (*entity.MatchRecord, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve match from storage: %w", err)
	}

	return match, nil
}

func (that *archiveService) RecentMatches(ctx context.Context, limit int64) ([]*entity.MatchRecord, error) {
	matches, err := that.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	return matches, nil
}

func (that *archiveService) Standings(ctx context.Context) ([]entity.Standing, error) {
	standings, err := that.standingsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve standings from storage: %w", err)
	}

	return standings, nil
}
