// ----------- pkg/web/handler/user_handler.go -----------
package handler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	apperrors "user-api/pkg/common/errors"
	"user-api/pkg/core/user/service"
	"user-api/pkg/web/mapper"
	"user-api/pkg/web/model"
)

// UsersBasePath is the mount point of the user routes.
const UsersBasePath = "/api/v1/users"

type UserHandler struct {
	users    service.UserService
	validate *validator.Validate
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{
		users:    users,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names; notblank rejects whitespace-only values
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FindByID GET /api/v1/users/:id
func (h *UserHandler) FindByID(ctx context.Context, c *app.RequestContext) {
	rawID := c.Param("id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		_ = c.Error(apperrors.NewInvalid("invalid user id: "+rawID, err))
		return
	}

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(consts.StatusOK, mapper.UserToResponse(user))
}

// CreateUser POST /api/v1/users/create
func (h *UserHandler) CreateUser(ctx context.Context, c *app.RequestContext) {
	var req model.UserPostRequest
	if err := c.Bind(&req); err != nil {
		_ = c.Error(apperrors.NewInvalid("malformed request body", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		_ = c.Error(apperrors.NewInvalid(validationMessage(err), err))
		return
	}

	saved, err := h.users.CreateUser(ctx, mapper.RequestToUser(req))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", UsersBasePath+"/"+saved.ID.String())
	c.JSON(consts.StatusCreated, mapper.UserToResponse(saved))
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "validation failed"
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}
