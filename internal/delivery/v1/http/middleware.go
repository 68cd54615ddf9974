package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// SessionMiddleware резолвит токен сессии из заголовка Authorization и
// кладёт сессию в контекст запроса. Запросы без валидной сессии
// отклоняются до хендлера.
func SessionMiddleware(sessions usecase.SessionUC) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.CurrentSession(r.Context(), bearerToken(r))
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromCtx(ctx context.Context) (*usecase.Session, error) {
	session, ok := ctx.Value(sessionCtxKey).(*usecase.Session)
	if !ok {
		return nil, e.ErrNotLoggedIn
	}
	return session, nil
}

// callerWithRole возвращает сессию запроса, если её роль совпадает с требуемой.
func callerWithRole(ctx context.Context, role domain.Role) (*usecase.Session, error) {
	session, err := sessionFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if session.Role != role {
		return nil, e.ErrRoleNotAllowed
	}
	return session, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
