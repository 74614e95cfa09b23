package data

import (
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

// Models is the database layer. The file store remains the source of truth
// for game documents; the database only mirrors the index so dates and games
// can be queried relationally.
type Models struct {
	Games GameModel
}

func NewModels(initDb *sql.DB) Models {
	return Models{
		Games: GameModel{db: initDb},
	}
}
