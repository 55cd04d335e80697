package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/domain"
	"github.com/daybook-app/daybook-web/internal/app/middleware"
	"github.com/daybook-app/daybook-web/internal/app/models"
	"github.com/daybook-app/daybook-web/internal/app/observability/metrics"
	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/app/services"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

const minPasswordLength = 8

// Handlers serves the login and registration views.
type Handlers struct {
	base     *domain.BaseHandler
	users    services.UserService
	captchas services.CaptchaService
	invites  services.InviteService
	logger   *zap.Logger
}

func NewHandlers(base *domain.BaseHandler, users services.UserService, captchas services.CaptchaService, invites services.InviteService, logger *zap.Logger) *Handlers {
	return &Handlers{
		base:     base,
		users:    users,
		captchas: captchas,
		invites:  invites,
		logger:   logger,
	}
}

func (h *Handlers) ShowLoginPage(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil && sess.Authenticated() {
		c.Redirect(http.StatusSeeOther, safeReturnURL(c.Query("returnUrl")))
		return
	}

	data := pages.LoginData{ReturnURL: c.Query("returnUrl")}
	if c.Query("registered") == "1" {
		data.Notice = "Account created. Sign in to start writing."
	}
	h.base.RenderPage(c, http.StatusOK, "Sign in - Daybook", "Sign in", pages.LoginPage(data))
}

func (h *Handlers) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	returnURL := c.PostForm("returnUrl")

	data := pages.LoginData{Username: username, ReturnURL: returnURL}

	if username == "" || password == "" {
		data.Error = "Username and password are required"
		h.base.RenderPage(c, http.StatusBadRequest, "Sign in - Daybook", "Sign in", pages.LoginPage(data))
		return
	}

	resp, err := h.users.Login(c.Request.Context(), models.LoginRequest{Username: username, Password: password})
	metrics.RecordAuthAttempt(c.Request.Context(), "login", err == nil)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("username", username), zap.Error(err))
		data.Error = upstream.MessageFor(err, "Login failed")
		h.base.RenderPage(c, http.StatusUnauthorized, "Sign in - Daybook", "Sign in", pages.LoginPage(data))
		return
	}

	if resp.AccessToken == "" {
		h.logger.Error("Login response carried no access token", zap.String("username", username))
		data.Error = "Login failed"
		h.base.RenderPage(c, http.StatusBadGateway, "Sign in - Daybook", "Sign in", pages.LoginPage(data))
		return
	}

	if sess := middleware.GetSession(c); sess != nil {
		sess.Login(resp.AccessToken, resp.User)
	}

	h.logger.Info("Successful login", zap.String("username", username))
	c.Redirect(http.StatusSeeOther, safeReturnURL(returnURL))
}

func (h *Handlers) Logout(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil {
		sess.Logout()
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handlers) ShowRegisterPage(c *gin.Context) {
	data := pages.RegisterData{InviteCode: c.Query("invite")}

	if data.InviteCode != "" {
		if invite, err := h.invites.GetByCode(c.Request.Context(), data.InviteCode); err == nil {
			data.Email = invite.Email
		}
	}

	h.withCaptcha(c, &data)
	h.base.RenderPage(c, http.StatusOK, "Register - Daybook", "Register", pages.RegisterPage(data))
}

func (h *Handlers) Register(c *gin.Context) {
	req := models.RegisterRequest{
		InviteCode:  strings.TrimSpace(c.PostForm("inviteCode")),
		Email:       strings.TrimSpace(c.PostForm("email")),
		Username:    strings.TrimSpace(c.PostForm("username")),
		Password:    c.PostForm("password"),
		CaptchaID:   c.PostForm("captchaId"),
		CaptchaCode: strings.TrimSpace(c.PostForm("captchaCode")),
	}
	confirm := c.PostForm("confirmPassword")

	data := pages.RegisterData{
		InviteCode: req.InviteCode,
		Email:      req.Email,
		Username:   req.Username,
	}

	if msg := validateRegistration(req, confirm); msg != "" {
		data.Error = msg
		h.withCaptcha(c, &data)
		h.base.RenderPage(c, http.StatusBadRequest, "Register - Daybook", "Register", pages.RegisterPage(data))
		return
	}

	_, err := h.users.Register(c.Request.Context(), req)
	metrics.RecordAuthAttempt(c.Request.Context(), "register", err == nil)
	if err != nil {
		h.logger.Warn("Registration failed", zap.String("username", req.Username), zap.Error(err))
		data.Error = upstream.MessageFor(err, "Registration failed")
		h.withCaptcha(c, &data)
		h.base.RenderPage(c, http.StatusBadRequest, "Register - Daybook", "Register", pages.RegisterPage(data))
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// withCaptcha attaches a fresh challenge; a used or failed captcha is never
// shown twice.
func (h *Handlers) withCaptcha(c *gin.Context, data *pages.RegisterData) {
	captcha, err := h.captchas.Fetch(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch captcha", zap.Error(err))
		if data.Error == "" {
			data.Error = upstream.MessageFor(err, "Failed to fetch captcha")
		}
		return
	}
	data.Captcha = captcha
}

func validateRegistration(req models.RegisterRequest, confirm string) string {
	switch {
	case req.InviteCode == "":
		return "Invite code is required"
	case req.Email == "":
		return "Email is required"
	case req.Username == "":
		return "Username is required"
	case len(req.Password) < minPasswordLength:
		return "Password must be at least 8 characters"
	case req.Password != confirm:
		return "Passwords do not match"
	case req.CaptchaCode == "":
		return "Captcha code is required"
	}
	return ""
}

// safeReturnURL confines post-login navigation to local paths.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/diary"
	}
	return raw
}
