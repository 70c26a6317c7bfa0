package model

// User is read-only: fetched, filtered and sorted, never mutated.
type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Address  *Address `json:"address,omitempty"`
}

type Address struct {
	City string `json:"city,omitempty"`
}

// City returns the user's city or "-" when the address is incomplete.
func (u User) City() string {
	if u.Address == nil || u.Address.City == "" {
		return "-"
	}
	return u.Address.City
}
