package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/utils"

	"go.uber.org/zap"
)

// Recover is the catch-all: a panic anywhere below becomes a 500 JSON body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromCtx(r.Context()).Error("panic recovered",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"message": fmt.Sprint(rec),
				"success": false,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
