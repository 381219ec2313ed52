package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/earthstream/projects-backend/internal/api/http"
	authmw "github.com/earthstream/projects-backend/internal/auth/middleware"
	"github.com/earthstream/projects-backend/internal/middleware"
	"github.com/earthstream/projects-backend/internal/projects/engine"
	projhttp "github.com/earthstream/projects-backend/internal/projects/http"
	"github.com/earthstream/projects-backend/internal/projects/snapshot"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Engine      *engine.Engine
	Snapshots   snapshot.Store
	AuthClient  *fbauth.Client
	Log         *logrus.Logger

	// Mutations per second allowed per caller.
	MutationRPS   float64
	MutationBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Snapshots)
	healthHandler.RegisterRoutes(r)

	handler := projhttp.New(dep.Engine)

	api := r.Group("/api/v1")
	handler.RegisterReads(api)

	if dep.MutationRPS <= 0 {
		dep.MutationRPS = 10
	}
	if dep.MutationBurst <= 0 {
		dep.MutationBurst = 20
	}

	mutations := api.Group("")
	if dep.AuthClient != nil {
		mutations.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	} else {
		mutations.Use(authmw.HeaderAuthMiddleware())
	}
	mutations.Use(middleware.RateLimit(dep.MutationRPS, dep.MutationBurst))
	handler.RegisterMutations(mutations)

	return r
}
