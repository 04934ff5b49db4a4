package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/panesgr/chatbot-backend/api/responses"
	pkgerrors "github.com/panesgr/chatbot-backend/pkg/errors"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

const sharedSecretHeader = "X-Panesbot-Secret"

// SharedSecret guards operational endpoints with a constant-time header
// comparison. An empty configured secret disables the endpoint entirely
// rather than leaving it open.
func SharedSecret(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(sharedSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or missing shared secret"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
