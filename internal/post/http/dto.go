package http

type CreatePostRequest struct {
	WriterID int64  `json:"writerId" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required,max=10000"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
