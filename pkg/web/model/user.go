package model

// request/response payloads
type (
	UserPostRequest struct {
		FirstName string `json:"firstName" validate:"required,notblank"`
		LastName  string `json:"lastName" validate:"required,notblank"`
		Email     string `json:"email" validate:"required,notblank,email"`
		Password  string `json:"password" validate:"required,notblank"`
	}

	// UserResponse never carries the password.
	UserResponse struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}

	ErrorMessage struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
)
