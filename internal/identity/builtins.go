package identity

// Built-in demo accounts. They are checked before the registered-users list
// on login, authenticate by exact credential match, are always verified, and
// never appear in the registered list.
type builtinAccount struct {
	password string
	user     User
}

var builtinAccounts = map[string]builtinAccount{
	"demo@sustainsports.com": {
		password: "demo123",
		user: User{
			ID:         "demo-user",
			Name:       "Demo User",
			Email:      "demo@sustainsports.com",
			IsAdmin:    false,
			IsVerified: true,
		},
	},
	"admin@sustainsports.com": {
		password: "admin123",
		user: User{
			ID:         "admin-user",
			Name:       "Admin User",
			Email:      "admin@sustainsports.com",
			IsAdmin:    true,
			IsVerified: true,
		},
	},
}
