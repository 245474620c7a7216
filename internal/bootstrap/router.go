package bootstrap

import (
	"net/http"
	"time"

	httpapi "github.com/projtrack-app/projtrack-backend/internal/api/http"
	apimiddleware "github.com/projtrack-app/projtrack-backend/internal/api/http/middleware"
	authhttp "github.com/projtrack-app/projtrack-backend/internal/auth/http"
	authmiddleware "github.com/projtrack-app/projtrack-backend/internal/auth/middleware"
	authrepo "github.com/projtrack-app/projtrack-backend/internal/auth/repository"
	authservice "github.com/projtrack-app/projtrack-backend/internal/auth/service"
	"github.com/projtrack-app/projtrack-backend/internal/auth/session"
	projhttp "github.com/projtrack-app/projtrack-backend/internal/projects/http"
	projrepo "github.com/projtrack-app/projtrack-backend/internal/projects/repository"
	projservice "github.com/projtrack-app/projtrack-backend/internal/projects/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Mongo          *mongo.Database
	Redis          *redis.Client
	SessionTTL     time.Duration
	SessionCookie  string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(apimiddleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Mongo, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := authrepo.NewUserRepository(dep.Mongo)
	projectRepo := projrepo.NewProjectRepository(dep.Mongo)
	sessions := session.NewManager(dep.Redis, dep.SessionTTL)

	authHandler := authhttp.NewHandler(authservice.NewAuthService(userRepo), sessions, dep.SessionCookie)
	authHandler.Register(r)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/projects")
	})

	projectsGroup := r.Group("/projects")
	projectsGroup.Use(authmiddleware.SessionAuth(sessions, dep.SessionCookie))

	projectHandler := projhttp.NewHandler(projservice.NewProjectService(projectRepo, userRepo))
	projectHandler.Register(projectsGroup)

	return r
}
