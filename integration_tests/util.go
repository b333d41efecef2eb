package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/eaglebank/eaglebank.go/db"
	"github.com/eaglebank/eaglebank.go/db/migrations"
	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/eaglebank/eaglebank.go/lib"
	"github.com/eaglebank/eaglebank.go/lib/logging"
	"github.com/eaglebank/eaglebank.go/lib/responses"
	"github.com/eaglebank/eaglebank.go/lib/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun/migrate"
)

// EagleBankTestServiceInit spins up a service on a named in-memory SQLite
// database so every suite gets its own isolated store.
func EagleBankTestServiceInit(dbName string) (svc *service.BankService, err error) {
	c := &service.Config{
		DatabaseUri:           fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName),
		DatabaseTimeout:       10,
		JWTSecret:             []byte("SECRET"),
		JWTAccessTokenExpiry:  3600,
		MinimumOpeningBalance: 50,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	if err = migrator.Init(ctx); err != nil {
		return nil, err
	}
	if _, err = migrator.Migrate(ctx); err != nil {
		return nil, err
	}

	svc = &service.BankService{
		Config: c,
		DB:     dbConn,
		Logger: logging.Logger(""),
	}
	return svc, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	return e
}

type testUser struct {
	User     *models.User
	Password string
}

func createTestUser(svc *service.BankService, username string) (*testUser, error) {
	password := "Test1234!"
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Name:     "Test User",
	}
	user, err := svc.CreateUser(context.Background(), user, password)
	if err != nil {
		return nil, err
	}
	return &testUser{User: user, Password: password}, nil
}

func encodeBody(v interface{}) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(v)
	return &buf, err
}
