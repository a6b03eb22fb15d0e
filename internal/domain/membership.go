package domain

const (
	MembershipTypeClient = "C"
	MembershipTypeArtist = "A"
)

type Membership struct {
	ID             int64  `db:"id"`
	UserID         int64  `db:"user_id"`
	Type           string `db:"type"`
	ExpireAt       int64  `db:"expire_at"`
	ReminderSentAt *int64 `db:"reminder_sent_at"`
	CreatedAt      int64  `db:"created_at"`
}

// MembershipReminder is a membership about to expire joined with the
// contact details of its holder.
type MembershipReminder struct {
	MembershipID int64  `db:"membership_id"`
	UserID       int64  `db:"user_id"`
	Email        string `db:"email"`
	FirstName    string `db:"first_name"`
	Locale       string `db:"locale"`
	Type         string `db:"type"`
	ExpireAt     int64  `db:"expire_at"`
}
