package auth

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// sessionWriter defers the session cookie to the moment the first header or
// byte of the response goes out, since scs has to commit the session before
// headers are sent.
type sessionWriter struct {
	gin.ResponseWriter
	sessions  *SessionManager
	request   *http.Request
	committed bool
}

func (w *sessionWriter) commitSession() {
	if w.committed {
		return
	}
	w.committed = true

	ctx := w.request.Context()
	switch w.sessions.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sessions.Commit(ctx)
		if err != nil {
			return
		}
		w.sessions.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sessions.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commitSession()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.commitSession()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commitSession()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.commitSession()
	return w.ResponseWriter.WriteString(s)
}

// SessionLoadSave adapts scs's LoadAndSave to a gin middleware: the session
// is loaded into the request context up front and committed through the
// wrapped writer on the way out. Must run before any handler touching the
// session.
func (sm *SessionManager) SessionLoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.Request = c.Request.WithContext(ctx)

		writer := &sessionWriter{
			ResponseWriter: c.Writer,
			sessions:       sm,
			request:        c.Request,
		}
		c.Writer = writer

		c.Next()

		// A handler that wrote nothing still gets its cookie out.
		writer.commitSession()
	}
}
