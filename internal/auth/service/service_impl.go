package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/clipshare/clipshare/internal/auth/dto"
	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/jwt"
	"github.com/clipshare/clipshare/internal/auth/model"
	"github.com/clipshare/clipshare/internal/repo"
)

type authService struct {
	userRepo    repo.UserRepo
	sessionRepo repo.SessionRepo
	jwtUtil     jwt.JWTUtil
	accessTTL   time.Duration
	refreshTTL  time.Duration
	v           *validator.Validate
	log         *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	userRepo repo.UserRepo,
	sessionRepo repo.SessionRepo,
	jwtUtil jwt.JWTUtil,
	accessTTL, refreshTTL time.Duration,
	v *validator.Validate,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtUtil:     jwtUtil,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		v:           v,
		log:         log,
		now:         time.Now,
	}
}

func newSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// bestEffort runs a side-effect whose failure must not affect the primary
// outcome; the error goes to the log and nowhere else.
func (a *authService) bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		a.log.Error("best-effort operation failed", zap.String("op", op), zap.Error(err))
	}
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (model.PublicUser, error) {
	if err := a.v.Struct(d); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	salt, err := newSalt()
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register salt")
	}

	digest, err := argon2id.CreateHash(d.Password+salt, argon2id.DefaultParams)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register hash")
	}

	user := model.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: digest,
		Salt:         salt,
		Status:       model.UserEnabled,
	}
	// uniqueness is enforced by the store, not pre-checked: a racing duplicate
	// surfaces as ErrAlreadyExists either way
	if err := a.userRepo.CreateUser(ctx, &user); err != nil {
		if customErrors.IsAlreadyExists(err) {
			return model.PublicUser{}, customErrors.ErrAlreadyExists
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	return user.Public(), nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO, meta model.ClientMeta) (model.LoginResult, error) {
	if err := a.v.Struct(d); err != nil {
		return model.LoginResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByUsername(ctx, d.Username)
	if customErrors.IsNotFound(err) {
		// unknown user and wrong password produce the same outward signal
		return model.LoginResult{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(d.Password+user.Salt, user.PasswordHash)
	if err != nil {
		return model.LoginResult{}, customErrors.WrapInternal(err, "Login compare")
	}
	if !ok {
		return model.LoginResult{}, customErrors.ErrInvalidCredentials
	}

	if user.Status == model.UserDisabled {
		return model.LoginResult{}, customErrors.ErrUserDisabled
	}

	accessToken, accessExp, err := a.jwtUtil.Issue(user.ID, a.accessTTL)
	if err != nil {
		return model.LoginResult{}, customErrors.WrapInternal(err, "Login access token")
	}
	refreshToken, refreshExp, err := a.jwtUtil.Issue(user.ID, a.refreshTTL)
	if err != nil {
		return model.LoginResult{}, customErrors.WrapInternal(err, "Login refresh token")
	}

	session := model.Session{
		UserID:           user.ID,
		Token:            accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        accessExp,
		RefreshExpiresAt: refreshExp,
		IP:               meta.IP,
		DeviceInfo:       meta.DeviceInfo,
		CreatedAt:        a.now(),
	}
	if err := a.sessionRepo.CreateSession(ctx, &session); err != nil {
		return model.LoginResult{}, customErrors.WrapInternal(err, "Login session")
	}

	a.bestEffort("record login", func() error {
		return a.userRepo.RecordLogin(ctx, user.ID, meta.IP, a.now())
	})

	return model.LoginResult{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(a.accessTTL.Seconds()),
	}, nil
}

func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.RefreshResult, error) {
	session, err := a.sessionRepo.FindByRefreshToken(ctx, refreshToken, a.now())
	if customErrors.IsSessionNotFound(err) {
		return model.RefreshResult{}, customErrors.ErrInvalidToken
	}
	if err != nil {
		return model.RefreshResult{}, customErrors.WrapInternal(err, "Refresh")
	}

	accessToken, accessExp, err := a.jwtUtil.Issue(session.UserID, a.accessTTL)
	if err != nil {
		return model.RefreshResult{}, customErrors.WrapInternal(err, "Refresh access token")
	}

	if err := a.sessionRepo.RotateAccessToken(ctx, session.ID, accessToken, accessExp); err != nil {
		return model.RefreshResult{}, customErrors.WrapInternal(err, "Refresh rotate")
	}

	return model.RefreshResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(a.accessTTL.Seconds()),
		TokenType:   "Bearer",
	}, nil
}

func (a *authService) Logout(ctx context.Context, accessToken string) error {
	if err := a.sessionRepo.DeleteByAccessToken(ctx, accessToken); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) Authenticate(ctx context.Context, accessToken string) (int64, error) {
	// session first: the cheap revocation check (logout deletes the row long
	// before the token's own expiry)
	if _, err := a.sessionRepo.FindByAccessToken(ctx, accessToken, a.now()); err != nil {
		if customErrors.IsSessionNotFound(err) {
			return 0, customErrors.ErrSessionNotFound
		}
		return 0, customErrors.WrapInternal(err, "Authenticate")
	}

	// signature second: a matching row alone must not admit a forged token
	claims, err := a.jwtUtil.Verify(accessToken)
	if err != nil {
		return 0, customErrors.ErrInvalidToken
	}

	userID, err := jwt.Subject(claims)
	if err != nil {
		return 0, customErrors.ErrInvalidToken
	}
	return userID, nil
}

func (a *authService) Me(ctx context.Context, userID int64) (model.PublicUser, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if customErrors.IsNotFound(err) {
		return model.PublicUser{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Me")
	}
	return user.Public(), nil
}
