package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/repositories"
	"tesBack/utils"
)

var ErrNotLoggedIn = models.NewError(models.ErrUnauthorized, "Not logged in")

type AuthService struct {
	UserRepo     *repositories.UserRepository
	SessionRepo  *repositories.SessionRepository
	Notifier     *NotificationService
	TokenManager *utils.Manager
	BcryptCost   int
	Logger       logger.Logger
	Metrics      *metrics.Metrics
	Now          Clock
}

// HashPassword hashes with the configured cost, defaulting to bcrypt's.
func (s *AuthService) HashPassword(password string) (string, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login matches the email, password and role triple. Agents must be approved.
func (s *AuthService) Login(ctx context.Context, req models.SignInRequest) (models.LoginResponse, error) {
	resp, err := s.login(ctx, req)
	s.Metrics.Action("login", err)
	if err != nil && errors.Is(err, models.ErrUnauthorized) && s.Logger != nil {
		s.Logger.Warnf("failed login for %q as %q: %v", req.Email, req.Role, err)
	}
	return resp, err
}

func (s *AuthService) login(ctx context.Context, req models.SignInRequest) (models.LoginResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, models.ErrNotFound) {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if user.Role != req.Role || !checkPassword(user.Password, req.Password) {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	if user.Role == models.RoleAgent && !user.IsApprovedAgent() {
		return models.LoginResponse{}, models.ErrPendingApproval
	}

	now := s.Now.now()
	session := models.NewSession(user, uuid.NewString(), now)
	if err := s.SessionRepo.Set(ctx, session); err != nil {
		return models.LoginResponse{}, err
	}
	tokens, err := s.TokenManager.NewJWT(user.ID, user.Role, now)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return models.LoginResponse{Session: session, Tokens: tokens}, nil
}

// Register creates an agent or customer account. Checks run in order:
// duplicate email, password rule, email format, role, phone.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	user, err := s.register(ctx, req)
	return user, finish(s.Logger, s.Metrics, "register", 0, err)
}

func (s *AuthService) register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	_, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return models.User{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, err
	}
	if !ValidPassword(req.Password) {
		return models.User{}, models.ErrInvalidPassword
	}
	if !ValidEmail(req.Email) {
		return models.User{}, models.ErrInvalidEmail
	}
	if req.Role != models.RoleAgent && req.Role != models.RoleCustomer {
		return models.User{}, models.ErrInvalidRole
	}
	if req.Phone != "" && !ValidPhone(req.Phone) {
		return models.User{}, models.ErrInvalidPhone
	}
	if req.Name == "" {
		return models.User{}, models.NewError(models.ErrValidation, "Name is required")
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Phone:     req.Phone,
		Role:      req.Role,
		CreatedAt: s.Now.now(),
	}
	if req.Role == models.RoleAgent {
		user.Agent = &models.AgentProfile{License: req.License, Agency: req.Agency, Status: models.AgentPending}
	} else {
		user.Customer = &models.CustomerProfile{Address: req.Address}
	}

	user, err = s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	if user.Role == models.RoleAgent {
		s.Notifier.Notify(ctx, "register", s.Notifier.adminNotifications(ctx, "register", models.NotifyAgentPending,
			"New Agent Application", fmt.Sprintf("%s has applied to become an agent", user.Name),
			map[string]int{models.MetaUserID: user.ID})...)
	}
	return user.Public(), nil
}

// ForgotPassword only confirms the email exists; delivery is out of band.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.UserRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrEmailNotFound
	}
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return err
	}
	if !ValidPassword(req.NewPassword) {
		return models.ErrInvalidPassword
	}
	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.UserRepo.UpdateUser(ctx, user.ID, func(u *models.User) error {
		u.Password = hash
		return nil
	})
	return finish(s.Logger, s.Metrics, "reset_password", user.ID, err)
}

// UpdateProfile applies the non-nil fields and refreshes the stored session
// when it belongs to the same user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (models.User, error) {
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if !ValidEmail(email) {
			return models.User{}, models.ErrInvalidEmail
		}
		upd.Email = &email
	}
	if upd.Phone != nil && *upd.Phone != "" && !ValidPhone(*upd.Phone) {
		return models.User{}, models.ErrInvalidPhone
	}

	user, err := s.UserRepo.UpdateProfile(ctx, userID, func(u *models.User) error {
		if upd.Name != nil {
			u.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.Address != nil && u.Customer != nil {
			u.Customer.Address = *upd.Address
		}
		if upd.Agency != nil && u.Agent != nil {
			u.Agent.Agency = *upd.Agency
		}
		return nil
	})
	if err != nil {
		return models.User{}, finish(s.Logger, s.Metrics, "update_profile", userID, err)
	}

	session, found, err := s.SessionRepo.Get(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if found {
		if err := s.SessionRepo.Set(ctx, models.NewSession(user, session.SessionID, session.LoginTime)); err != nil {
			return models.User{}, err
		}
	}
	return user.Public(), finish(s.Logger, s.Metrics, "update_profile", userID, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int, req models.UpdatePasswordRequest) error {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(user.Password, req.CurrentPassword) {
		return finish(s.Logger, s.Metrics, "change_password", userID, models.ErrWrongPassword)
	}
	if !ValidPassword(req.NewPassword) {
		return models.ErrInvalidPassword
	}
	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.UserRepo.UpdateUser(ctx, userID, func(u *models.User) error {
		u.Password = hash
		return nil
	})
	return finish(s.Logger, s.Metrics, "change_password", userID, err)
}

// CurrentUser returns the session userID opened at login.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (models.Session, error) {
	session, found, err := s.SessionRepo.Get(ctx, userID)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, ErrNotLoggedIn
	}
	return session, nil
}

// Logout clears only the caller's own session.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	return s.SessionRepo.Clear(ctx, userID)
}
