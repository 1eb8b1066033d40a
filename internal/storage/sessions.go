package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubescene"
)

// Session sources.
const (
	SourceShuffle = "shuffle"
	SourceManual  = "manual"
	SourceBLE     = "ble"
)

// SessionRecord represents one play session in the journal.
type SessionRecord struct {
	SessionID       string
	StartedAt       time.Time
	EndedAt         *time.Time
	Source          string
	ShuffleNotation string
	MoveCount       int
}

// MoveRecord represents one executed move in the journal.
type MoveRecord struct {
	MoveID      int64
	SessionID   string
	MoveIndex   int
	At          time.Time
	Face        string
	Direction   int
	Notation    string
	FromShuffle bool
}

// SessionRepository provides journal access for sessions and their moves.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Begin creates a new session and returns its ID.
func (r *SessionRepository) Begin(source, shuffleNotation string) (string, error) {
	id := uuid.New().String()
	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at_ms, source, shuffle_notation)
		VALUES (?, ?, ?, ?)
	`, id, time.Now().UnixMilli(), source, shuffleNotation)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// End marks the session finished and records its final move count.
func (r *SessionRepository) End(sessionID string) error {
	_, err := r.db.Exec(`
		UPDATE sessions
		SET ended_at_ms = ?,
		    move_count = (SELECT COUNT(*) FROM moves WHERE session_id = ?)
		WHERE session_id = ?
	`, time.Now().UnixMilli(), sessionID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// AddMove appends one executed move to the session.
func (r *SessionRepository) AddMove(sessionID string, index int, move cubescene.Move, fromShuffle bool) error {
	flag := 0
	if fromShuffle {
		flag = 1
	}
	_, err := r.db.Exec(`
		INSERT INTO moves (session_id, move_index, ts_ms, face, direction, notation, from_shuffle)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, index, time.Now().UnixMilli(), string(move.Face), int(move.Direction), move.Notation(), flag)
	if err != nil {
		return fmt.Errorf("failed to record move: %w", err)
	}
	return nil
}

// AddMoves appends a batch of moves in one transaction.
func (r *SessionRepository) AddMoves(sessionID string, moves []cubescene.Move, fromShuffle bool) error {
	flag := 0
	if fromShuffle {
		flag = 1
	}
	now := time.Now().UnixMilli()
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(`
				INSERT INTO moves (session_id, move_index, ts_ms, face, direction, notation, from_shuffle)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, sessionID, i, now, string(move.Face), int(move.Direction), move.Notation(), flag)
			if err != nil {
				return fmt.Errorf("failed to record move %d: %w", i, err)
			}
		}
		return nil
	})
}

// List returns the most recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]SessionRecord, error) {
	rows, err := r.db.Query(`
		SELECT session_id, started_at_ms, ended_at_ms, source, shuffle_notation, move_count
		FROM sessions
		ORDER BY started_at_ms DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var s SessionRecord
		var startedMs int64
		var endedMs sql.NullInt64
		var notation sql.NullString
		if err := rows.Scan(&s.SessionID, &startedMs, &endedMs, &s.Source, &notation, &s.MoveCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.StartedAt = time.UnixMilli(startedMs)
		if endedMs.Valid {
			t := time.UnixMilli(endedMs.Int64)
			s.EndedAt = &t
		}
		s.ShuffleNotation = notation.String
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Get returns one session by ID, or a prefix of one.
func (r *SessionRepository) Get(sessionID string) (*SessionRecord, error) {
	row := r.db.QueryRow(`
		SELECT session_id, started_at_ms, ended_at_ms, source, shuffle_notation, move_count
		FROM sessions
		WHERE session_id = ? OR session_id LIKE ? || '%'
		LIMIT 1
	`, sessionID, sessionID)

	var s SessionRecord
	var startedMs int64
	var endedMs sql.NullInt64
	var notation sql.NullString
	if err := row.Scan(&s.SessionID, &startedMs, &endedMs, &s.Source, &notation, &s.MoveCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.StartedAt = time.UnixMilli(startedMs)
	if endedMs.Valid {
		t := time.UnixMilli(endedMs.Int64)
		s.EndedAt = &t
	}
	s.ShuffleNotation = notation.String
	return &s, nil
}

// Moves returns all moves of a session in order.
func (r *SessionRepository) Moves(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, face, direction, notation, from_shuffle
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var tsMs int64
		var flag int
		if err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &tsMs, &m.Face, &m.Direction, &m.Notation, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.At = time.UnixMilli(tsMs)
		m.FromShuffle = flag == 1
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
