package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

type postgres struct {
	db *pgxpool.Pool
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

type Player struct {
	PlayerId     int64
	Username     string
	PasswordHash []byte
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int64
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

// InsertGameRecord stores one finished agent run. The final board (mines
// and flags) goes in as a gob blob so a run can be replayed later.
func (pg *postgres) InsertGameRecord(
	ctx context.Context,
	playerId *int64,
	board *mines.Board,
	won, dead bool,
	moves int,
	startedAt, endedAt time.Time,
) (int64, error) {
	var boardBuf bytes.Buffer
	if err := gob.NewEncoder(&boardBuf).Encode(board); err != nil {
		return 0, err
	}
	var recordId int64
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO game_record (
			player_id, height, width, mine_count,
			won, dead, moves, board, started_at, ended_at
		)
		VALUES (
			@player_id, @height, @width, @mine_count,
			@won, @dead, @moves, @board, @started_at, @ended_at
		)
		RETURNING game_record_id;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"height":     board.Height,
			"width":      board.Width,
			"mine_count": board.MineCount,
			"won":        won,
			"dead":       dead,
			"moves":      moves,
			"board":      boardBuf.Bytes(),
			"started_at": startedAt,
			"ended_at":   endedAt,
		}).Scan(&recordId); err != nil {
		return 0, err
	}
	return recordId, nil
}

func (pg *postgres) GetRecordBoard(
	ctx context.Context, recordId int64,
) (*mines.Board, error) {
	var boardBuf []byte
	if err := pg.db.QueryRow(ctx, `
		SELECT board
		FROM game_record
		WHERE game_record_id = $1;`,
		recordId).Scan(&boardBuf); err != nil {
		return nil, err
	}
	var board mines.Board
	if err := gob.NewDecoder(bytes.NewBuffer(boardBuf)).Decode(&board); err != nil {
		return nil, err
	}
	return &board, nil
}
