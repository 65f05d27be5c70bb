// Package httpapi exposes the member service over HTTP with gin.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/member"
)

// Members is the service surface the handlers call.
type Members interface {
	JoinMember(ctx context.Context, m *member.Member) (*member.Member, error)
	UpdateMember(ctx context.Context, m *member.Member, id int64) (*member.Member, error)
	GetMemberInfo(ctx context.Context, id int64) (*member.Member, error)
	RemoveMember(ctx context.Context, id int64) error
}

// Evictor drops a cached member without touching the store.
type Evictor interface {
	Evict(ctx context.Context, id int64)
}

// Check is a named dependency probe used by /healthz.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Deps are the collaborators the router is built from. Evictor, Checks and
// Metrics are optional; the matching routes are not registered when unset.
type Deps struct {
	Members Members
	Evictor Evictor
	Checks  []Check
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter builds the gin engine with request ids, access logging, panic
// recovery and error mapping installed.
func NewRouter(deps Deps) *gin.Engine {
	logger := logging.OrOp(deps.Logger, "http")
	h := &handlers{members: deps.Members, evictor: deps.Evictor, checks: deps.Checks}

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), gin.Recovery(), ErrorMapper(logger))

	r.GET("/api/posts/:postsId", h.getPost)

	api := r.Group("/api")
	{
		api.POST("/members", h.joinMember)
		api.GET("/members/:id", h.getMember)
		api.PUT("/members/:id", h.updateMember)
		api.DELETE("/members/:id", h.removeMember)
		if deps.Evictor != nil {
			api.DELETE("/cache/members/:id", h.evictMember)
		}
	}

	r.GET("/healthz", h.healthz)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}
	return r
}
