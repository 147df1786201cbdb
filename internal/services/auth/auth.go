package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserStorage interface {
	Insert(ctx context.Context, username, email string, passwordHash []byte) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	storage      UserStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	tokenTTL     time.Duration
}

func New(
	log *slog.Logger,
	storage UserStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

// Signup creates a user with a bcrypt password hash, queues the welcome email
// and returns the user together with a fresh access token.
func (a *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", email)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, "", err
	}
	user, err := a.storage.Insert(ctx, username, email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, "", ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, "", err
	}
	token, err := a.newToken(user.ID)
	if err != nil {
		log.Error("Error signing token", "errMsg", err.Error())
		return nil, "", err
	}
	a.taskExecutor.Add(func() {
		a.sendWelcomeEmail(user.Email, user.Username)
	})
	return user, token, nil
}

// Login verifies the password against the stored hash. A wrong email and a
// wrong password are the same error so callers can't probe for accounts.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("no user with that email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, "", ErrInvalidCredentials
	}
	token, err := a.newToken(user.ID)
	if err != nil {
		log.Error("Error signing token", "errMsg", err.Error())
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken checks the signature and expiry and returns the user id baked
// into the token. Every failure collapses to ErrInvalidToken.
func (a *AuthService) VerifyToken(token string) (int64, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(uid), nil
}

func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	log := a.log.With("op", op, "id", id)
	user, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (a *AuthService) newToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) sendWelcomeEmail(email, username string) {
	a.log.Info("sending welcome email", "email", email)
	err := a.mailer.Send(email, "user_welcome.html", map[string]any{
		"username": username,
	})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}
