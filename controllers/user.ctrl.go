package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/eaglebank/eaglebank.go/lib/responses"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
)

// UserController : UserController struct
type UserController struct {
	svc *service.BankService
}

func NewUserController(svc *service.BankService) *UserController {
	return &UserController{
		svc: svc,
	}
}

type Address struct {
	Line1    string `json:"line1"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

type CreateUserRequestBody struct {
	Username string  `json:"username" validate:"required,alphanum,min=3,max=64"`
	Password string  `json:"password" validate:"required,min=8"`
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
}

type UpdateUserRequestBody struct {
	Email   *string  `json:"email" validate:"omitempty,email"`
	Name    *string  `json:"name"`
	Phone   *string  `json:"phone"`
	Address *Address `json:"address"`
}

type UserResponseBody struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user *models.User) *UserResponseBody {
	return &UserResponseBody{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Phone:    user.Phone,
		Address: Address{
			Line1:    user.AddressLine1,
			Town:     user.AddressTown,
			County:   user.AddressCounty,
			Postcode: user.AddressPostcode,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// CreateUser : Register a new user
func (controller *UserController) CreateUser(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user := &models.User{
		Username:        body.Username,
		Email:           body.Email,
		Name:            body.Name,
		Phone:           body.Phone,
		AddressLine1:    body.Address.Line1,
		AddressTown:     body.Address.Town,
		AddressCounty:   body.Address.County,
		AddressPostcode: body.Address.Postcode,
	}
	user, err := controller.svc.CreateUser(c.Request().Context(), user, body.Password)
	if err != nil {
		if err == service.ErrDuplicateUser {
			return c.JSON(http.StatusConflict, responses.DuplicateUserError)
		}
		c.Logger().Errorf("Failed to create user: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser : Fetch the caller's own user record
func (controller *UserController) GetUser(c echo.Context) error {
	user, errResponse := controller.authenticatedUserForPath(c)
	if errResponse != nil {
		return c.JSON(errResponse.HttpStatusCode, errResponse)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser : Partially update the caller's own user record
func (controller *UserController) UpdateUser(c echo.Context) error {
	user, errResponse := controller.authenticatedUserForPath(c)
	if errResponse != nil {
		return c.JSON(errResponse.HttpStatusCode, errResponse)
	}

	var body UpdateUserRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if body.Email != nil {
		user.Email = *body.Email
	}
	if body.Name != nil {
		user.Name = *body.Name
	}
	if body.Phone != nil {
		user.Phone = *body.Phone
	}
	if body.Address != nil {
		user.AddressLine1 = body.Address.Line1
		user.AddressTown = body.Address.Town
		user.AddressCounty = body.Address.County
		user.AddressPostcode = body.Address.Postcode
	}
	user.UpdatedAt = time.Now()

	user, err := controller.svc.UpdateUser(c.Request().Context(), user)
	if err != nil {
		if err == service.ErrDuplicateUser {
			return c.JSON(http.StatusConflict, responses.DuplicateUserError)
		}
		c.Logger().Errorf("Failed to update user: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser : Delete the caller's own user record
func (controller *UserController) DeleteUser(c echo.Context) error {
	user, errResponse := controller.authenticatedUserForPath(c)
	if errResponse != nil {
		return c.JSON(errResponse.HttpStatusCode, errResponse)
	}

	err := controller.svc.DeleteUser(c.Request().Context(), user.ID)
	if err != nil {
		if err == service.ErrUserHasAccounts {
			return c.JSON(http.StatusConflict, responses.UserHasAccountsError)
		}
		c.Logger().Errorf("Failed to delete user %d: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// authenticatedUserForPath resolves the caller and checks the path id against
// them. User endpoints are strictly self-service.
func (controller *UserController) authenticatedUserForPath(c echo.Context) (*models.User, *responses.ErrorResponse) {
	userId := c.Get("UserID").(int64)

	user, err := controller.svc.FindUser(c.Request().Context(), userId)
	if err != nil {
		return nil, &responses.UserNotFoundError
	}

	pathId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, &responses.BadArgumentsError
	}
	if pathId != user.ID {
		return nil, &responses.ForbiddenError
	}
	return user, nil
}
