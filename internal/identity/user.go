package identity

// User is the identity record persisted in the registered-users list. The
// Password field holds the Argon2id hash for registered users and is stripped
// before a record leaves the service.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	IsAdmin    bool   `json:"isAdmin"`
	IsVerified bool   `json:"isVerified"`
}

// Sanitized returns a copy safe to hand to callers and to persist as the
// session record.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
