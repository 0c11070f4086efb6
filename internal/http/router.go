package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/RPleshkov/SessionVault/internal/http/handlers"
	"github.com/RPleshkov/SessionVault/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, mh *handlers.MailHandlers, adh *handlers.AdminHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	reg := r.Group("/registration")
	reg.POST("", ah.Register)

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	mail := r.Group("/mail")
	mail.POST("/request-confirmation-code", mh.RequestConfirmationCode)
	mail.POST("/confirm", mh.Confirm)

	v := r.Group("/auth").Use(jwtmw.WithJWT())
	v.GET("/me", ah.Me)
	v.POST("/logout", ah.Logout)
	v.POST("/logout-others", ah.LogoutOthers)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.PATCH("/users/:id/activate", adh.ActivateUser)
	adm.PATCH("/users/:id/deactivate", adh.DeactivateUser)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
