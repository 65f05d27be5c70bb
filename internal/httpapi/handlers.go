package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-member-cache/member"
)

type handlers struct {
	members Members
	evictor Evictor
	checks  []Check
}

type memberRequest struct {
	Name string `json:"name"`
}

func (h *handlers) getPost(c *gin.Context) {
	raw := c.Param("postsId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid postsId: %s", raw)
		return
	}
	c.String(http.StatusOK, "performance test - postsId: %d", id)
}

func (h *handlers) joinMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(member.Invalid(err))
		return
	}

	m, err := h.members.JoinMember(c.Request.Context(), &member.Member{Name: req.Name})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *handlers) getMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.members.GetMemberInfo(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) updateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(member.Invalid(err))
		return
	}

	m, err := h.members.UpdateMember(c.Request.Context(), &member.Member{Name: req.Name}, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) removeMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.members.RemoveMember(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) evictMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.evictor.Evict(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

func (h *handlers) healthz(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			results[check.Name] = err.Error()
			continue
		}
		results[check.Name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
}

// pathID parses the :id parameter, recording a validation error on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(member.Invalid(err))
		return 0, false
	}
	return id, true
}
