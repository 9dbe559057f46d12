package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if s.Config.AccessControlAllowOrigin != "" {
		corsConfig.AllowOrigins = []string{s.Config.AccessControlAllowOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5})
	limitPasswordReset := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/password/forgot", limitPasswordReset, s.handleForgotPassword())
	apirouter.POST("/password/reset/:token", s.handleResetPassword())

	apirouter.GET("/garages", s.handleListGarages())
	apirouter.GET("/garages/:id", s.handleGetGarage())
	apirouter.GET("/garages/:id/reviews", s.handleListGarageReviews())
	apirouter.GET("/spare-parts", s.handleListSpareParts())
	apirouter.GET("/spare-parts/:id", s.handleGetSparePart())
	apirouter.GET("/spare-parts/:id/reviews", s.handleListSparePartReviews())

	// websocket auth rides on a query token, not the Authorization header
	apirouter.GET("/ws/conversations/:id", s.handleConversationSocket())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.GET("/me/profile", s.handleShowProfile())
	authorized.PUT("/me/profile", s.handleEditProfile())
	authorized.PUT("/me/avatar", s.handleUploadAvatar())
	authorized.GET("/me/garages", s.handleMyGarages())
	authorized.GET("/me/spare-parts", s.handleMySpareParts())
	authorized.POST("/media/images", s.handleUploadImage())

	authorized.POST("/garages", s.handleCreateGarage())
	authorized.PUT("/garages/:id", s.handleUpdateGarage())
	authorized.DELETE("/garages/:id", s.handleDeleteGarage())
	authorized.POST("/garages/:id/reviews", s.handleReviewGarage())

	authorized.POST("/spare-parts", s.handleCreateSparePart())
	authorized.PUT("/spare-parts/:id", s.handleUpdateSparePart())
	authorized.DELETE("/spare-parts/:id", s.handleDeleteSparePart())
	authorized.POST("/spare-parts/:id/reviews", s.handleReviewSparePart())

	authorized.GET("/conversations", s.handleListConversations())
	authorized.POST("/conversations", s.handleStartConversation())
	authorized.GET("/conversations/:id/messages", s.handleGetMessages())
	authorized.POST("/conversations/:id/messages", s.handleSendMessage())

	admin := authorized.Group("/admin")
	admin.Use(s.AdminOnly())
	admin.GET("/users", s.handleAdminListUsers())
	admin.GET("/garages", s.handleAdminListGarages())
	admin.GET("/spare-parts", s.handleAdminListSpareParts())
	admin.PUT("/garages/:id/verify", s.handleAdminToggleGarageVerified())
	admin.PUT("/spare-parts/:id/availability", s.handleAdminToggleSparePartAvailability())
	admin.DELETE("/garages/:id", s.handleAdminDeleteGarage())
	admin.DELETE("/spare-parts/:id", s.handleAdminDeleteSparePart())
}
