package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func asRole(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Set(c, session.Actor{RegistryNo: "1", Role: role})
		c.Next()
	}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(newTestService(t))
	router := gin.New()
	router.POST("/rbac/enforce", asRole(session.RoleManager), handler.Enforce)

	body, _ := json.Marshal(map[string]string{"resource": "leave", "action": "approve"})
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(newTestService(t))
	router := gin.New()
	router.GET("/rbac/me/permissions", asRole(session.RoleStaff), handler.MyPermissions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/me/permissions", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.RolePermissionsResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "STAFF", resp.Data.Role)
	assert.Len(t, resp.Data.Permissions, 4)
}

func TestHandler_MyPermissionsWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/rbac/me/permissions", NewHandler(newTestService(t)).MyPermissions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/me/permissions", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
