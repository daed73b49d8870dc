package dto

type UserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
