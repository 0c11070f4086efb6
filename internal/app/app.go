package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RPleshkov/SessionVault/internal/config"
	httpx "github.com/RPleshkov/SessionVault/internal/http"
	"github.com/RPleshkov/SessionVault/internal/http/handlers"
	"github.com/RPleshkov/SessionVault/internal/http/middleware"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/auth"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/database"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/notifications"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/repositories"
	"github.com/RPleshkov/SessionVault/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Signing keys are read once here and held immutably by the token service.
	privateKey, publicKey, err := auth.LoadSigningKeys(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	if err != nil {
		return err
	}

	// Initialize infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(privateKey, publicKey, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)
	revocations := repositories.NewRevocationRegistry(rdb)

	// Initialize services
	confirmationSvc := services.NewConfirmationService(rdb, services.ConfirmationConfig{
		Length: cfg.ConfirmationCodeLength,
		TTL:    cfg.ConfirmationCodeTTL,
	})
	authSvc := services.NewAuthService(userRepo, sessionRepo, revocations, passwordSvc, tokenSvc, notificationSvc, services.AuthConfig{
		SessionLimit:   cfg.UserSessionLimit,
		AccessTokenTTL: cfg.AccessTTL,
	})
	mailSvc := services.NewMailService(userRepo, confirmationSvc, notificationSvc)
	policySvc := services.NewPolicyService(cas.E)

	// Initialize handlers
	authH := handlers.NewAuthHandlers(authSvc)
	mailH := handlers.NewMailHandlers(mailSvc)
	adminH := handlers.NewAdminHandlers(userRepo)
	polH := handlers.NewPolicyHandlers(policySvc)

	// Initialize middleware
	jwtMW := middleware.NewAuthMW(authSvc)
	casbinMW := middleware.NewCasbinMW(policySvc)

	// Build router
	r := httpx.BuildRouter(authH, mailH, adminH, polH, jwtMW, casbinMW)

	policies, err := policySvc.ListPolicies()
	if err != nil {
		return err
	}
	if len(policies) == 0 {
		if err := policySvc.AddPolicy("role_admin", "/admin/*", "(GET|POST|PATCH|DELETE)"); err != nil {
			return err
		}
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
