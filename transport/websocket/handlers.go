package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingCoordinates = errors.New("row and column are required")

func (that *Server) handleStart(sess *session, msg *Message) error {
	log := sess.logger.With("method", "handleStart")

	var payload StartPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	size := payload.Size
	if size == 0 {
		size = that.config.BoardSize
	}

	players := payload.Players
	if players == 0 {
		players = that.config.Players
	}

	if err := sess.coordinator.RequestStartGame(size, players); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	log.Info("game started", "size", size, "players", players)

	return nil
}

func (that *Server) handleIdentity(sess *session, msg *Message) error {
	var payload IdentityPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if err := sess.coordinator.RequestIdentitySelection(payload.Identity); err != nil {
		return fmt.Errorf("failed to select identity: %w", err)
	}

	return nil
}

func (that *Server) handleClaim(sess *session, msg *Message) error {
	var payload ClaimPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if payload.Row == nil || payload.Column == nil {
		return errMissingCoordinates
	}

	if _, err := sess.coordinator.RequestClaim(*payload.Row, *payload.Column); err != nil {
		return fmt.Errorf("failed to claim tile: %w", err)
	}

	return nil
}

func (that *Server) handleRetry(sess *session, _ *Message) error {
	if err := sess.coordinator.RequestRetry(); err != nil {
		return fmt.Errorf("failed to retry: %w", err)
	}

	return nil
}

func (that *Server) handleMenu(sess *session, _ *Message) error {
	if err := sess.coordinator.RequestMainMenu(); err != nil {
		return fmt.Errorf("failed to return to menu: %w", err)
	}

	return nil
}

func (that *Server) handleState(sess *session, msg *Message) error {
	sess.send(msg.Action, SnapshotPayload{Snapshot: sess.coordinator.Snapshot()})

	return nil
}

// decodePayload - an absent payload leaves v at its zero value.
func decodePayload(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
