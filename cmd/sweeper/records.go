package main

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

type GameRecord struct {
	GameRecordId int64   `json:"record_id"`
	Username     *string `json:"username"`
	Height       int     `json:"height"`
	Width        int     `json:"width"`
	MineCount    int     `json:"mine_count"`
	Moves        int     `json:"moves"`
	Playtime     float64 `json:"playtime"`
}

type GameRecordFilters struct {
	username   *string
	gameParams *mines.GameParams
}

func (f GameRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = *f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.gameParams != nil {
		args["height"] = f.gameParams.Height
		args["width"] = f.gameParams.Width
		args["mineCount"] = f.gameParams.MineCount
		whereClauses = append(
			whereClauses,
			"height = @height",
			"width = @width",
			"mine_count = @mineCount",
		)
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type GameRecordsOption = func(*GameRecordFilters) error

func GameRecordsForPlayer(username string) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.username = &username
		return nil
	}
}

func GameRecordsForGameParams(gameParams *mines.GameParams) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.gameParams = gameParams
		return nil
	}
}

func getGameRecords(
	ctx context.Context, options ...GameRecordsOption,
) ([]GameRecord, error) {
	filters := &GameRecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		game_record_id
		, username
		, height
		, width
		, mine_count
		, moves
		, (
			extract('epoch' from ended_at) - extract('epoch' from started_at)
		) * 1000 playtime
	from game_record
		left outer join player using (player_id)
	where
		won = true
		and dead = false
		and ended_at is not null`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " and " + whereClause
	}

	sql += " order by moves, playtime"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}
