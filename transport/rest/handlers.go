package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/pkg/handlers"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)

	GetMatch(w http.ResponseWriter, r *http.Request)
	ListMatches(w http.ResponseWriter, r *http.Request)
	ListStandings(w http.ResponseWriter, r *http.Request)
}

type archiveService interface {
	GetMatch(ctx context.Context, id string) (*entity.MatchRecord, error)
	RecentMatches(ctx context.Context, limit int64) ([]*entity.MatchRecord, error)
	Standings(ctx context.Context) ([]entity.Standing, error)
}

type restHandlers struct {
	logger  *slog.Logger
	archive archiveService
}

func NewHandlers(logger *slog.Logger, archive archiveService) Handlers {
	return &restHandlers{
		logger:  logger.With("component", "rest"),
		archive: archive,
	}
}

func (that *restHandlers) PingHandler(w http.ResponseWriter, r *http.Request) {
	handlers.PingHandler(w, r)
}

// GetMatch - GET /matches/{id}.
func (that *restHandlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetMatch")

	id := r.PathValue("id")
	if id == "" {
		handlers.WriteError(w, http.StatusBadRequest, "match id is required")
		return
	}

	match, err := that.archive.GetMatch(r.Context(), id)
	if errors.Is(err, apperror.ErrNotFound) {
		handlers.WriteError(w, http.StatusNotFound, "match not found")
		return
	}

	if err != nil {
		log.Error("failed to get match", "matchID", id, "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to get match")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, match)
}

// ListMatches - GET /matches?limit=N, newest first.
func (that *restHandlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListMatches")

	limit := int64(defaultRecentLimit)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > maxRecentLimit {
			handlers.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}

		limit = parsed
	}

	matches, err := that.archive.RecentMatches(r.Context(), limit)
	if err != nil {
		log.Error("failed to list matches", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}

	if matches == nil {
		matches = []*entity.MatchRecord{}
	}

	handlers.WriteJSON(w, http.StatusOK, matches)
}

// ListStandings - GET /standings.
func (that *restHandlers) ListStandings(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListStandings")

	standings, err := that.archive.Standings(r.Context())
	if err != nil {
		log.Error("failed to list standings", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to list standings")
		return
	}

	if standings == nil {
		standings = []entity.Standing{}
	}

	handlers.WriteJSON(w, http.StatusOK, standings)
}
