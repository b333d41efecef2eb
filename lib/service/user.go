package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eaglebank/eaglebank.go/db/models"
	"github.com/eaglebank/eaglebank.go/lib/security"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *BankService) CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if svc.Config.MinPasswordEntropy > 0 {
		entropy := passwordvalidator.GetEntropy(password)
		if entropy < float64(svc.Config.MinPasswordEntropy) {
			return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
		}
	}

	// we only ever store the hashed password
	user.Password = security.HashPassword(password)

	if _, err := svc.DB.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

func (svc *BankService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (svc *BankService) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (svc *BankService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	_, err := svc.DB.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user unless they still own accounts. The ownership
// check and the delete run in one transaction so an account created
// concurrently can not be orphaned.
func (svc *BankService) DeleteUser(ctx context.Context, userId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().Model((*models.Account)(nil)).Where("user_id = ?", userId).Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrUserHasAccounts
		}
		_, err = tx.NewDelete().Model((*models.User)(nil)).Where("id = ?", userId).Exec(ctx)
		return err
	})
}

// covers both the Postgres and SQLite unique index violations
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
