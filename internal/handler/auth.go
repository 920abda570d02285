package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.AuthConfig
	Admins AdminStore
	logger *logrus.Entry
}

func NewAuthHandler(cfg config.AuthConfig, admins AdminStore, logger *logrus.Entry) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: admins, logger: logger.WithField(log.FldComponent, "auth")}
}

// ----- DTOs -----

// loginReq takes the login name as username or email.
type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     string  `json:"role"`
	Demo     bool    `json:"demo,omitempty"`
}

type authResp struct {
	Success bool      `json:"success"`
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func (h *AuthHandler) isDemo(login, password string) bool {
	if !h.Cfg.DemoLoginEnabled || h.Cfg.DemoUsername == "" {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(login), []byte(h.Cfg.DemoUsername))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(h.Cfg.DemoPassword))
	return u&p == 1
}

// Login handles POST /api/login: the configured demo pair first, then the
// admins table with a bcrypt comparison.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "username and password are required")
	}
	logger := h.logger.WithField(log.FldUser, login)

	var user userPart
	if h.isDemo(login, req.Password) {
		name := "Demo Admin"
		user = userPart{Username: login, Name: &name, Role: utils.RoleAdmin, Demo: true}
	} else {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		a, err := h.Admins.GetByLogin(ctx, login)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logger.Info("Login rejected: unknown user")
				return fail(c, http.StatusUnauthorized, "invalid credentials")
			}
			return serverError(c, h.logger, err, "login failed")
		}
		if !utils.VerifyPassword(a.PasswordHash, req.Password) {
			logger.Info("Login rejected: wrong password")
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		user = userPart{ID: a.ID, Username: a.Username, Email: a.Email, Name: a.Name, Role: utils.RoleAdmin}
	}

	sub := utils.Subject{ID: strconv.FormatUint(user.ID, 10), Username: user.Username, Role: user.Role}
	if user.Demo {
		sub.ID = "demo:" + user.Username
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, sub, h.Cfg.AccessTTLMin)
	if err != nil {
		return serverError(c, h.logger, err, "issue token failed")
	}
	logger.Info("Login succeeded")
	return c.JSON(http.StatusOK, authResp{Success: true, User: user, Token: access.Token, Expires: access.Exp})
}

// Me returns the identity carried by the bearer token.
func (h *AuthHandler) Me(c echo.Context) error {
	sub, found := c.Get(utils.ContextSubject).(utils.Subject)
	if !found {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    echo.Map{"id": sub.ID, "username": sub.Username, "role": sub.Role},
	})
}
