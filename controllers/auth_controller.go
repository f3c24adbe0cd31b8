package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/models"
	"teamhub/repository"
	"teamhub/utils"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthController struct {
	users  UserStore
	tokens TokenIssuer
	mailer WelcomeSender
	log    logrus.FieldLogger
}

// NewAuthController wires signup and login. mailer may be nil.
func NewAuthController(users UserStore, tokens TokenIssuer, mailer WelcomeSender, log logrus.FieldLogger) *AuthController {
	return &AuthController{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		log:    log.WithField("component", "auth"),
	}
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return writeError(c, ac.log, err)
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Role:         models.DefaultUserRole,
	}
	if err := ac.users.Create(c.UserContext(), &user); err != nil {
		return writeError(c, ac.log, err)
	}

	token, err := ac.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return writeError(c, ac.log, err)
	}

	utils.LogEvent(ac.log, "user_signed_up", map[string]interface{}{"user_id": user.ID})

	if ac.mailer != nil {
		go func(to, name string) {
			if err := ac.mailer.SendWelcome(to, name); err != nil {
				// Log error but don't fail signup
				utils.LogError(ac.log, "welcome_email_failed", err, map[string]interface{}{"email": to})
			}
		}(user.Email, user.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token: token,
		User:  &user,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	// Unknown email and wrong password must be indistinguishable
	user, err := ac.users.FindByEmail(c.UserContext(), utils.NormalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return writeError(c, ac.log, err)
		}
		utils.BurnPasswordCheck(req.Password)
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := ac.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return writeError(c, ac.log, err)
	}

	return c.JSON(AuthResponse{
		Token: token,
		User:  user,
	})
}

// Me returns the authenticated user
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, ac.log, err)
	}
	user, err := ac.users.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// token outlived its account
			return writeError(c, ac.log, errUnauthenticated)
		}
		return writeError(c, ac.log, err)
	}
	return c.JSON(user)
}
