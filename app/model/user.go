package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OTP is a one-time login code. Only the bcrypt hash of the code is kept.
type OTP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;index;not null" json:"email"`
	CodeHash  string    `gorm:"size:100;not null" json:"-"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (OTP) TableName() string {
	return "otps"
}

// JWTClaims is the session token payload; identity is the verified email only.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Actor is the verified caller placed in the request context by the auth middleware.
type Actor struct {
	Email    string
	Username string
	Domain   string
}

// RevokedToken is a session token invalidated by logout before its expiry.
type RevokedToken struct {
	Token     string    `gorm:"primaryKey;type:text" json:"token"`
	Email     string    `gorm:"size:255" json:"email"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
