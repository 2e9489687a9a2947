package http

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Nickname string `json:"nickname" validate:"required,max=64"`
	Address  string `json:"address" validate:"max=255"`
}

type UpdateUserRequest struct {
	Nickname string `json:"nickname" validate:"required,max=64"`
	Address  string `json:"address" validate:"max=255"`
}
