package domain

type Client struct {
	ID              int64   `db:"id"`
	UserID          int64   `db:"user_id"`
	CompanyName     *string `db:"company_name"`
	Description     string  `db:"description"`
	WebSite         *string `db:"web_site"`
	IsHidden        bool    `db:"is_hidden"`
	IsPending       bool    `db:"is_pending"`
	IsApproved      bool    `db:"is_approved"`
	CreatedAt       int64   `db:"created_at"`
	UpdatedAt       int64   `db:"updated_at"`
	UserIsSuspended bool    `db:"user_is_suspended"`
	Photos          []Photo `db:"-"`
}

// IsPublic reports whether the client may be shown to users that neither
// own it nor administer the platform.
func (c Client) IsPublic() bool {
	return c.IsApproved && !c.IsPending && !c.IsHidden && !c.UserIsSuspended
}
