// Package dto holds the JSON views served by the HTTP API.
package dto

// User is the public view of an account. The address is left out.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Nickname    string `json:"nickname"`
	Status      string `json:"status"`
	LastLoginAt int64  `json:"lastLoginAt"`
}

// MyProfile is what the owner sees of their own account.
type MyProfile struct {
	User
	Address string `json:"address"`
}

type Post struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
	ModifiedAt int64  `json:"modifiedAt"`
	Writer     User   `json:"writer"`
}
