package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/eaglebank/eaglebank.go/controllers"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	suite.Suite
	Service *service.BankService
	echo    *echo.Echo
}

func (suite *UserTestSuite) SetupSuite() {
	svc, err := EagleBankTestServiceInit("usertest")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.Service = svc
	suite.echo = newTestEcho()
}

func (suite *UserTestSuite) TestCreateUser() {
	buf, err := encodeBody(&controllers.CreateUserRequestBody{
		Username: "john1",
		Password: "Test1234!",
		Email:    "john1@example.com",
		Name:     "John Doe",
		Phone:    "+441234567890",
		Address: controllers.Address{
			Line1:    "1 Main Street",
			Town:     "London",
			County:   "Greater London",
			Postcode: "E1 6AN",
		},
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/users", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.CreateUser(c))
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	responseBody := &controllers.UserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	assert.Equal(suite.T(), "john1", responseBody.Username)
	assert.Equal(suite.T(), "1 Main Street", responseBody.Address.Line1)
	// the hashed password must never leak into the response
	assert.NotContains(suite.T(), rec.Body.String(), "password")
}

func (suite *UserTestSuite) TestCreateUserWithDuplicateUsername() {
	_, err := createTestUser(suite.Service, "duplicated")
	assert.NoError(suite.T(), err)

	buf, err := encodeBody(&controllers.CreateUserRequestBody{
		Username: "duplicated",
		Password: "Test1234!",
		Email:    "other@example.com",
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/users", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.CreateUser(c))
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *UserTestSuite) TestCreateUserWithInvalidEmail() {
	buf, err := encodeBody(&controllers.CreateUserRequestBody{
		Username: "badmail",
		Password: "Test1234!",
		Email:    "not-an-email",
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/users", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.CreateUser(c))
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *UserTestSuite) TestGetForeignUserIsForbidden() {
	user, err := createTestUser(suite.Service, "getself")
	assert.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/:id", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.Set("UserID", user.User.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(user.User.ID+1, 10))

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.GetUser(c))
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}

func (suite *UserTestSuite) TestUpdateUser() {
	user, err := createTestUser(suite.Service, "updateme")
	assert.NoError(suite.T(), err)

	name := "New Name"
	buf, err := encodeBody(&controllers.UpdateUserRequestBody{Name: &name})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPatch, "/v1/users/:id", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.Set("UserID", user.User.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(user.User.ID, 10))

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.UpdateUser(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	responseBody := &controllers.UserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	assert.Equal(suite.T(), "New Name", responseBody.Name)
	// username is immutable
	assert.Equal(suite.T(), "updateme", responseBody.Username)
}

func (suite *UserTestSuite) TestDeleteUserWithAccountsIsBlocked() {
	user, err := createTestUser(suite.Service, "deleteblocked")
	assert.NoError(suite.T(), err)
	_, err = suite.Service.CreateAccount(context.Background(), user.User.ID, "savings", "", decimal.NewFromInt(100))
	assert.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/:id", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.Set("UserID", user.User.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(user.User.ID, 10))

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.DeleteUser(c))
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)

	// the user must still exist
	_, err = suite.Service.FindUser(context.Background(), user.User.ID)
	assert.NoError(suite.T(), err)
}

func (suite *UserTestSuite) TestDeleteUserWithoutAccounts() {
	user, err := createTestUser(suite.Service, "deleteok")
	assert.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/:id", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.Set("UserID", user.User.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(user.User.ID, 10))

	controller := controllers.NewUserController(suite.Service)
	assert.NoError(suite.T(), controller.DeleteUser(c))
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	_, err = suite.Service.FindUser(context.Background(), user.User.ID)
	assert.ErrorIs(suite.T(), err, service.ErrUserNotFound)
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}
