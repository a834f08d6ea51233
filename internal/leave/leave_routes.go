package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	leaves.Use(middleware.ContextLogger(logger))
	{
		// static segments first so they are not captured by /:id
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.ListOwn)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ListPending)
		leaves.GET("/calendar", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.Calendar)
		leaves.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "leave", "export"),
			handler.Export,
		)

		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.ListAll)
		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		leaves.DELETE("",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "leave", "delete_all"),
			handler.DeleteAll,
		)

		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetByID)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update_own"), handler.Edit)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
		leaves.GET("/:id/document", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.Document)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
