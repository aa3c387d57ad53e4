package domain

// Role names known to the system. New accounts always start with RoleUser;
// RoleAdmin is only ever assigned out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role is an authorization grouping persisted alongside users.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the persisted account record. The identifier is store-assigned and
// immutable once set; Username is unique across all users. Password always
// holds a bcrypt hash, never plaintext, and is excluded from serialization.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Roles    []Role `json:"-"`
}

// UserView is the transport-safe projection of a User. The password hash and
// role relations never leave the core in any other shape.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// View projects the user into its outward representation.
func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}

// HasRole reports whether the user holds the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role names in declaration order.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
