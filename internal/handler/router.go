package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sumitroy01/Donate-v2/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Profiles  *ProfileHandler
	Donations *DonationHandler
	JWTSecret []byte
	// Window for abuse-prone public endpoints (resend, forgot-password,
	// order creation).
	PublicRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	limited := middleware.RateLimit(deps.PublicRateWindow)

	api.GET("/healthz", Health)

	api.POST("/auth/signup", deps.Auth.Signup)
	api.POST("/auth/verify", deps.Auth.Verify)
	api.POST("/auth/resend", limited, deps.Auth.Resend)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)
	api.POST("/auth/password/forgot", limited, deps.Auth.ForgotPassword)
	api.POST("/auth/password/reset", deps.Auth.ResetPassword)

	api.GET("/profiles", deps.Profiles.List)
	api.GET("/profiles/:id", deps.Profiles.Get)

	api.POST("/donations/order", limited, deps.Donations.CreateOrder)
	// Gateway posts the checkout result here; the browser follows the
	// redirect either way.
	api.POST("/donations/verify", deps.Donations.VerifyPayment)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/auth/me", deps.Auth.Me)
	authGroup.POST("/profiles", deps.Profiles.Create)
	authGroup.GET("/profile", deps.Profiles.Mine)
	authGroup.PUT("/profiles/:id", deps.Profiles.Update)
}
