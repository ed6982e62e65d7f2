package entities

type User struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Name     string `db:"name"`
	PassHash []byte `db:"pass_hash"`
	Role     string `db:"role"`
}
