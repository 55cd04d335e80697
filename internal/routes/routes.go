package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/domain"
	"github.com/daybook-app/daybook-web/internal/app/domain/account"
	"github.com/daybook-app/daybook-web/internal/app/domain/auth"
	"github.com/daybook-app/daybook-web/internal/app/domain/diary"
	"github.com/daybook-app/daybook-web/internal/app/domain/invites"
	"github.com/daybook-app/daybook-web/internal/app/middleware"
	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/app/services"
	"github.com/daybook-app/daybook-web/internal/app/session"
	"github.com/daybook-app/daybook-web/internal/pkg/config"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

type AppHandlers struct {
	Auth    *auth.Handlers
	Diary   *diary.Handlers
	Invites *invites.Handlers
	Account *account.Handlers

	base *domain.BaseHandler
}

func Setup(r *gin.Engine, client *upstream.Client, cfg *config.Config, log *zap.Logger) {
	handlers := setupDependencies(client, cfg, log)
	setupRouter(r, handlers, log)
}

func setupDependencies(client *upstream.Client, cfg *config.Config, log *zap.Logger) *AppHandlers {
	baseHandler := domain.NewBaseHandler(log)

	userService := services.NewUserService(client, log)
	diaryService := services.NewDiaryService(client, log)
	inviteService := services.NewInviteService(client, log)
	captchaService := services.NewCaptchaService(client, log)

	return &AppHandlers{
		Auth:    auth.NewHandlers(baseHandler, userService, captchaService, inviteService, log),
		Diary:   diary.NewHandlers(baseHandler, diaryService, cfg.ImageCacheTTL, log),
		Invites: invites.NewHandlers(baseHandler, inviteService, log),
		Account: account.NewHandlers(baseHandler, log),
		base:    baseHandler,
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, log *zap.Logger) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/diary")
	})

	// Auth routes
	r.GET("/login", h.Auth.ShowLoginPage)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/register", h.Auth.ShowRegisterPage)
	r.POST("/register", h.Auth.Register)

	// Signed-in routes
	protected := r.Group("/")
	protected.Use(middleware.RequireSession(log))
	{
		protected.GET("/diary", h.Diary.ShowDiaryPage)
		protected.POST("/diary", h.Diary.CreateEntry)
		protected.POST("/diary/:id", h.Diary.UpdateEntry)
		protected.POST("/diary/:id/delete", h.Diary.DeleteEntry)
		protected.GET("/images/:id", h.Diary.EntryImage)

		protected.GET("/account", h.Account.ShowAccountPage)
		protected.POST("/account/delete", h.Account.DeleteAccount)
		protected.POST("/account/restore", h.Account.RestoreAccount)
	}

	// Admin routes
	admin := r.Group("/invites")
	admin.Use(middleware.RequireSession(log, session.RoleAdmin))
	{
		admin.GET("", h.Invites.ShowInvitesPage)
		admin.POST("", h.Invites.CreateInvite)
	}

	// 404 handler - must be last
	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Page not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		h.base.RenderPage(c, http.StatusNotFound, "Page Not Found - Daybook", "", pages.NotFoundPage())
	})
}
