package repo

import (
	"context"
	"time"

	"fiber/wof/app/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	SaveOTP(ctx context.Context, otp *model.OTP) error
	ActiveOTPs(ctx context.Context, email string, now time.Time) ([]model.OTP, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) error
	RevokeToken(ctx context.Context, t *model.RevokedToken) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthRepo struct {
	DB *gorm.DB
}

var _ AuthRepository = (*AuthRepo)(nil)

func NewAuthRepo(db *gorm.DB) *AuthRepo {
	return &AuthRepo{DB: db}
}

// SaveOTP replaces any earlier codes for the same email.
func (r *AuthRepo) SaveOTP(ctx context.Context, otp *model.OTP) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", otp.Email).Delete(&model.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
	if err != nil {
		return &model.StorageError{Op: "save otp", Err: errors.Wrap(err, "otps")}
	}
	return nil
}

func (r *AuthRepo) ActiveOTPs(ctx context.Context, email string, now time.Time) ([]model.OTP, error) {
	var otps []model.OTP
	err := r.DB.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", email, false, now).
		Order("created_at desc").
		Find(&otps).Error
	if err != nil {
		return nil, &model.StorageError{Op: "find otp", Err: errors.Wrap(err, "otps")}
	}
	return otps, nil
}

func (r *AuthRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&model.OTP{}).Where("id = ?", id).Update("used", true)
	if res.Error != nil {
		return &model.StorageError{Op: "mark otp", Err: errors.Wrap(res.Error, "otps")}
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteExpired also clears revoked tokens that would have expired anyway.
func (r *AuthRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("expires_at <= ? OR used = ?", now, true).Delete(&model.OTP{}).Error; err != nil {
		return &model.StorageError{Op: "purge otp", Err: errors.Wrap(err, "otps")}
	}
	if err := db.Where("expires_at <= ?", now).Delete(&model.RevokedToken{}).Error; err != nil {
		return &model.StorageError{Op: "purge tokens", Err: errors.Wrap(err, "revoked_tokens")}
	}
	return nil
}

func (r *AuthRepo) RevokeToken(ctx context.Context, t *model.RevokedToken) error {
	if err := r.DB.WithContext(ctx).Save(t).Error; err != nil {
		return &model.StorageError{Op: "revoke token", Err: errors.Wrap(err, "revoked_tokens")}
	}
	return nil
}

func (r *AuthRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.RevokedToken{}).Where("token = ?", token).Count(&n).Error
	if err != nil {
		return false, &model.StorageError{Op: "check token", Err: errors.Wrap(err, "revoked_tokens")}
	}
	return n > 0, nil
}
