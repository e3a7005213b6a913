package auth

// Claims is the identity extracted from a verified token. UserID feeds the
// audit trail as the acting user.
type Claims struct {
	UserID string
	Email  string
}
