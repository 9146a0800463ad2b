package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type StandingsRepository interface {
	Record(ctx context.Context, match *entity.MatchRecord) error
	List(ctx context.Context) ([]entity.Standing, error)
}

type standingsRepository struct {
	conn *sql.DB
}

func NewStandingsRepository(conn *sql.DB) StandingsRepository {
	return &standingsRepository{
		conn: conn,
	}
}

// Record - tallies a finished match: a win for the winner and a loss for everyone else,
// or a draw for every identity.
func (that *standingsRepository) Record(ctx context.Context, match *entity.MatchRecord) error {
	query := `INSERT INTO standings (identity, wins, losses, draws) VALUES (?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			wins = wins + excluded.wins,
			losses = losses + excluded.losses,
			draws = draws + excluded.draws`

	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	for playerID, identity := range match.Identities {
		var wins, losses, draws int

		switch {
		case match.IsDraw():
			draws = 1
		case playerID == match.Winner:
			wins = 1
		default:
			losses = 1
		}

		if _, err = tx.ExecContext(ctx, query, identity, wins, losses, draws); err != nil {
			return fmt.Errorf("can't record standing for %q: %w", identity, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit standings: %w", err)
	}

	return nil
}

func (that *standingsRepository) List(ctx context.Context) ([]entity.Standing, error) {
	query := `SELECT identity, wins, losses, draws FROM standings ORDER BY wins DESC, draws DESC, identity ASC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list standings: %w", err)
	}
	defer rows.Close()

	var standings []entity.Standing

	for rows.Next() {
		var standing entity.Standing
		if err = rows.Scan(&standing.Identity, &standing.Wins, &standing.Losses, &standing.Draws); err != nil {
			return nil, fmt.Errorf("can't scan standing: %w", err)
		}

		standings = append(standings, standing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate standings: %w", err)
	}

	return standings, nil
}
