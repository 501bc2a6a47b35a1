package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"shopd/internal/domain/model"
	"shopd/internal/repository"
)

// refresh tokenが使えない（期限切れ・使用済み・失効・不明）
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type RefreshOutput struct {
	Token string `json:"token"`
}

// RefreshUsecase はrefresh tokenのローテーション。
// 古いトークンは使用済みにして、新しいaccess+refreshを発行する。
type RefreshUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

// DI
func NewRefreshUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshUsecase {
	return &RefreshUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *RefreshUsecase) Execute(ctx context.Context, plainRefresh string, userAgent string) (RefreshOutput, LoginSideEffect, error) {
	var out RefreshOutput
	var side LoginSideEffect

	if plainRefresh == "" {
		return out, side, ErrInvalidRefreshToken
	}

	hash := sha256.Sum256([]byte(plainRefresh))
	stored, err := u.rtRepo.FindByTokenHash(ctx, hex.EncodeToString(hash[:]))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, side, ErrInvalidRefreshToken
		}
		return out, side, err
	}

	now := u.clock.Now()
	if stored.UsedAt != nil || stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return out, side, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, side, ErrInvalidRefreshToken
		}
		return out, side, err
	}

	//古い方は使用済みにする（再利用検知）
	if err := u.rtRepo.MarkUsed(ctx, stored.ID); err != nil {
		return out, side, err
	}

	accessToken, _, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, side, err
	}

	//新しいrefreshを発行
	plainNext, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}
	nextHash := sha256.Sum256([]byte(plainNext))

	if err := u.rtRepo.Create(ctx, &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(nextHash[:]),
		UserAgent: userAgent,
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return out, side, err
	}

	out.Token = accessToken
	side.PlainRefreshToken = plainNext
	return out, side, nil
}
