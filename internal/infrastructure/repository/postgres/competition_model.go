package postgres

import "time"

type competitionTableModel struct {
	ID                      string    `db:"id"`
	Name                    string    `db:"name"`
	Sport                   string    `db:"sport"`
	Season                  string    `db:"season"`
	Code                    string    `db:"code"`
	CompletionBufferMinutes int       `db:"completion_buffer_minutes"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}
