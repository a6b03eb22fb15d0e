package domain

// ContactMessage is a message sent through the marketplace to the user behind
// an artist profile.
type ContactMessage struct {
	Sender    User
	Recipient User
	Artist    Artist
	Message   string
}
