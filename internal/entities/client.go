package entities

import "time"

type Client struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Company   *string   `db:"company"`
	CreatedAt time.Time `db:"created_at"`
}
