package mapper

import (
	core "user-api/pkg/core/user/model"
	"user-api/pkg/web/model"
)

// RequestToUser copies the request into a new, unsaved user. The ID is left for the repository.
func RequestToUser(req model.UserPostRequest) core.User {
	return core.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
}

func UserToResponse(u core.User) model.UserResponse {
	return model.UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
