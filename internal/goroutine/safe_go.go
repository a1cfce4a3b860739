package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/mugangish/shelter-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic. Используется для фоновой
// отправки почты и рассылки событий, где падение не должно ронять процесс.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic в горутине: %v\nstack:\n%s", r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	SafeGo(func() { fn(ctx) })
}
