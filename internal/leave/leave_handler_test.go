package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/session"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeLeaveService struct {
	leave.Service

	SubmitFn    func(ctx context.Context, actor session.Actor, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	ApproveFn   func(ctx context.Context, actor session.Actor, id int64) (leave.LeaveResponse, error)
	ListAllFn   func(ctx context.Context, actor session.Actor) ([]leave.LeaveResponse, error)
	DeleteAllFn func(ctx context.Context, actor session.Actor) (int64, error)
	DocumentFn  func(ctx context.Context, actor session.Actor, id int64) (leave.Document, error)
	CalendarFn  func(ctx context.Context, actor session.Actor) ([]byte, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actor session.Actor, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.SubmitFn(ctx, actor, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actor session.Actor, id int64) (leave.LeaveResponse, error) {
	return f.ApproveFn(ctx, actor, id)
}
func (f *fakeLeaveService) ListAll(ctx context.Context, actor session.Actor) ([]leave.LeaveResponse, error) {
	return f.ListAllFn(ctx, actor)
}
func (f *fakeLeaveService) DeleteAll(ctx context.Context, actor session.Actor) (int64, error) {
	return f.DeleteAllFn(ctx, actor)
}
func (f *fakeLeaveService) Document(ctx context.Context, actor session.Actor, id int64) (leave.Document, error) {
	return f.DocumentFn(ctx, actor, id)
}
func (f *fakeLeaveService) Calendar(ctx context.Context, actor session.Actor) ([]byte, error) {
	return f.CalendarFn(ctx, actor)
}

func newTestContext(method, target, body string, actor *session.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if actor != nil {
		session.Set(c, *actor)
	}
	return c, w
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, actor session.Actor, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "Ayse Kaya", actor.FullName)
				assert.Equal(t, "2024-06-01", req.StartDate)
				return leave.LeaveResponse{ID: 1, Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves",
			`{"leave_type":"ANNUAL","start_date":"2024-06-01","end_date":"2024-06-05"}`, &staff)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	})

	t.Run("malformed date fails binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves",
			`{"leave_type":"ANNUAL","start_date":"01/06/2024","end_date":"2024-06-05"}`, &staff)

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, w.Body.String(), "Start Date must be a date in YYYY-MM-DD format")
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(context.Context, session.Actor, leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrDuplicateRequest
			},
		}
		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves",
			`{"leave_type":"ANNUAL","start_date":"2024-06-01","end_date":"2024-06-05"}`, &staff)

		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Bu tarihlerde zaten bir izin talebiniz var.")
	})

	t.Run("missing session", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves", `{}`, nil)

		h.Submit(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves/abc/approve", "", &manager)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("hidden request is not found", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveFn: func(_ context.Context, _ session.Actor, id int64) (leave.LeaveResponse, error) {
				assert.Equal(t, int64(9), id)
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/leaves/9/approve", "", &otherManager)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveHandler_ListAll(t *testing.T) {
	svc := &fakeLeaveService{
		ListAllFn: func(context.Context, session.Actor) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{
				{ID: 3, Status: leave.StatusPending},
				{ID: 2, Status: leave.StatusApproved},
				{ID: 1, Status: leave.StatusPending},
			}, nil
		},
	}
	h := leave.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/v1/leaves?status=pending&page=1&page_size=1", "", &hr)

	h.ListAll(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []leave.LeaveResponse  `json:"data"`
		Meta response.PaginationMeta `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(3), body.Data[0].ID)
	assert.Equal(t, int64(2), body.Meta.Total)
}

func TestLeaveHandler_DeleteAll(t *testing.T) {
	svc := &fakeLeaveService{
		DeleteAllFn: func(_ context.Context, actor session.Actor) (int64, error) {
			if !actor.IsHR() {
				return 0, leaveerrors.ErrForbidden
			}
			return 4, nil
		},
	}
	h := leave.NewHandler(svc)

	c, w := newTestContext(http.MethodDelete, "/api/v1/leaves", "", &manager)
	h.DeleteAll(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newTestContext(http.MethodDelete, "/api/v1/leaves", "", &hr)
	h.DeleteAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":4`)
}

func TestLeaveHandler_Downloads(t *testing.T) {
	svc := &fakeLeaveService{
		DocumentFn: func(context.Context, session.Actor, int64) (leave.Document, error) {
			return leave.Document{Filename: "Ayse Kaya_Yıllık_İzin_42.pdf", Content: []byte("%PDF-1.4")}, nil
		},
		CalendarFn: func(context.Context, session.Actor) ([]byte, error) {
			return []byte("BEGIN:VCALENDAR"), nil
		},
	}
	h := leave.NewHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/v1/leaves/5/document", "", &staff)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Document(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	c, w = newTestContext(http.MethodGet, "/api/v1/leaves/calendar", "", &staff)
	h.Calendar(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.ContentTypeICS, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), leave.CalendarFileName)
}
