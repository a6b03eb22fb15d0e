package domain

type Artist struct {
	ID        int64   `db:"id"`
	UserID    int64   `db:"user_id"`
	FirstName *string `db:"first_name"`
	LastName  *string `db:"last_name"`
	BirthDate *string `db:"birth_date"`
	Type      *string `db:"type"`
	CreatedAt int64   `db:"created_at"`
	UpdatedAt int64   `db:"updated_at"`
}
