package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	recentMatchKey = "matches:recent"
)

var ErrMatchNotFound = fmt.Errorf("match %w", apperror.ErrNotFound)

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, match *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.MatchRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository - stores finished matches as JSON. A zero ttl keeps them forever.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMatch) CreateOrUpdate(ctx context.Context, match *entity.MatchRecord) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+match.ID, matchJSON, that.ttl)
		pipe.ZAdd(ctx, recentMatchKey, redis.Z{
			Score:  float64(match.FinishedAt.UnixMilli()),
			Member: match.ID,
		})

		// index entries older than the ttl point at expired keys
		if that.ttl > 0 {
			cutoff := time.Now().Add(-that.ttl).UnixMilli()
			pipe.ZRemRangeByScore(ctx, recentMatchKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var match entity.MatchRecord
	if err = json.Unmarshal([]byte(response), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// ListRecent returns up to limit matches, newest first. Index entries whose match has expired
// are dropped from the index.
func (that *dbMatch) ListRecent(ctx context.Context, limit int64) ([]*entity.MatchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.ZRevRange(ctx, recentMatchKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	matches := make([]*entity.MatchRecord, 0, len(ids))
	for _, id := range ids {
		match, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrMatchNotFound) {
			if err = that.DeleteByID(ctx, id); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, matchKeyPrefix+id)
		pipe.ZRem(ctx, recentMatchKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete match by ID: %w", err)
	}

	return nil
}
