package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/pkg/apperror"
	"github.com/mugangish/shelter-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			var appErr *apperror.AppError
			if errors.As(err.Err, &appErr) {
				statusCode = appErr.HTTPStatus
				message = appErr.Message
			} else if errors.Is(err.Err, repository.ErrUserNotFound) {
				statusCode = http.StatusNotFound
				message = "пользователь не найден"
			} else if errors.Is(err.Err, repository.ErrShelterNotFound) {
				statusCode = http.StatusNotFound
				message = "убежище не найдено"
			} else if errors.Is(err.Err, repository.ErrOrganizationNotFound) {
				statusCode = http.StatusNotFound
				message = "организация не найдена"
			} else if errors.Is(err.Err, repository.ErrBranchNotFound) {
				statusCode = http.StatusNotFound
				message = "филиал не найден"
			} else if errors.Is(err.Err, repository.ErrVerificationNotFound) {
				statusCode = http.StatusNotFound
				message = "заявка на верификацию не найдена"
			} else if errors.Is(err.Err, repository.ErrReviewNotFound) {
				statusCode = http.StatusNotFound
				message = "отзыв не найден"
			} else if errors.Is(err.Err, repository.ErrReportNotFound) {
				statusCode = http.StatusNotFound
				message = "жалоба не найдена"
			} else if errors.Is(err.Err, repository.ErrMediaNotFound) {
				statusCode = http.StatusNotFound
				message = "файл не найден"
			} else if err.Error() != "" {
				// Понятные сообщения отдаём клиенту, внутренние маскируем
				errStr := err.Error()
				if !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "неверный") || contains(errStr, "невалид") || contains(errStr, "недопустим") || contains(errStr, "обязател") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "нет прав") || contains(errStr, "не авторизован") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
