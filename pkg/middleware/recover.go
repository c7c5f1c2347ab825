package middleware

import (
	"net/http"

	"conference-booking/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover answers a panicking handler with the 500 envelope.
// http.ErrAbortHandler keeps propagating so net/http can drop the connection.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("component", "recover"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				}
				if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
					fields = append(fields, zap.Int64("user_id", userID))
				}
				log.Error("PANIC recovered", fields...)

				utils.ResponseInternalError(w, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
