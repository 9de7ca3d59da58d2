package models

import "time"

// Answer is a row of the append-only answers table.
type Answer struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	QuestionID int64     `db:"question_id"`
	Answer     string    `db:"answer"`
	Correct    bool      `db:"correct"`
	AnsweredAt time.Time `db:"answered_at"`
}
