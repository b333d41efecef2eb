package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eaglebank/eaglebank.go/controllers"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	Service *service.BankService
	echo    *echo.Echo
	user    *testUser
}

func (suite *AuthTestSuite) SetupSuite() {
	svc, err := EagleBankTestServiceInit("authtest")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	user, err := createTestUser(svc, "authuser")
	if err != nil {
		log.Fatalf("Error creating test user: %v", err)
	}
	suite.Service = svc
	suite.echo = newTestEcho()
	suite.user = user
}

func (suite *AuthTestSuite) TestLogin() {
	buf, err := encodeBody(&controllers.LoginRequestBody{
		Username: suite.user.User.Username,
		Password: suite.user.Password,
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewAuthController(suite.Service)
	assert.NoError(suite.T(), controller.Login(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	responseBody := &controllers.LoginResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(responseBody))
	assert.NotEmpty(suite.T(), responseBody.Token)
}

func (suite *AuthTestSuite) TestLoginWithWrongPassword() {
	buf, err := encodeBody(&controllers.LoginRequestBody{
		Username: suite.user.User.Username,
		Password: "wrong-password",
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewAuthController(suite.Service)
	assert.NoError(suite.T(), controller.Login(c))
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *AuthTestSuite) TestLoginWithUnknownUser() {
	buf, err := encodeBody(&controllers.LoginRequestBody{
		Username: "nobody",
		Password: "irrelevant",
	})
	assert.NoError(suite.T(), err)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	controller := controllers.NewAuthController(suite.Service)
	assert.NoError(suite.T(), controller.Login(c))
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
