package models

import (
	"time"

	"github.com/lib/pq"
)

// Question is a row of the questions table. Options map to a TEXT[] column.
type Question struct {
	ID            int64          `db:"id"`
	Question      string         `db:"question"`
	Options       pq.StringArray `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Category      string         `db:"category"`
	Explanation   string         `db:"explanation"`
	WeekOf        time.Time      `db:"week_of"`
	IsArchived    bool           `db:"is_archived"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
