package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studyscout-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studyscout-backend/internal/http/middleware"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ResourceHandler *httpH.ResourceHandler
	HealthHandler   *httpH.HealthHandler

	ServiceName  string
	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS(cfg.AllowOrigins))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	if cfg.ResourceHandler != nil {
		r.GET("/find_resources", cfg.ResourceHandler.FindResources)
		r.GET("/subjects", cfg.ResourceHandler.ListSubjects)
	}

	return r
}
