package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/repository"
)

func newErrorHandlerRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(err)
	})
	return router
}

func performBoom(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_RepositoryNotFoundSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"user", repository.ErrUserNotFound},
		{"shelter", repository.ErrShelterNotFound},
		{"organization", repository.ErrOrganizationNotFound},
		{"branch", repository.ErrBranchNotFound},
		{"verification", repository.ErrVerificationNotFound},
		{"review", repository.ErrReviewNotFound},
		{"report", repository.ErrReportNotFound},
		{"media", repository.ErrMediaNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performBoom(newErrorHandlerRouter(tc.err))
			assert.Equal(t, http.StatusNotFound, w.Code)
			// Сырое сообщение сентинела клиенту не отдаём
			assert.NotContains(t, w.Body.String(), "not found")
		})
	}
}

func TestErrorHandler_AppErrorStatus(t *testing.T) {
	w := performBoom(newErrorHandlerRouter(apperror.ErrAlreadyModerated))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestErrorHandler_MasksInternalErrors(t *testing.T) {
	w := performBoom(newErrorHandlerRouter(errors.New("sql: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "внутренняя ошибка сервера")
	assert.NotContains(t, w.Body.String(), "sql")
}
