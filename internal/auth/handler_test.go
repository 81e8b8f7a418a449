package auth

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

type captureAudit struct {
	entries []audit.Entry
}

func (c *captureAudit) Record(ctx context.Context, entry audit.Entry) error {
	c.entries = append(c.entries, entry)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *Service, *captureAudit) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "atelier_session", time.Hour, false)
	repo := newMemoryRepo()
	service := NewService(repo)
	recorder := &captureAudit{}
	handler := NewHandler(nil, nil, service, sessions, recorder)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			rec := httptest.NewRecorder()
			next.ServeHTTP(rec, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
			require.NoError(t, sessions.Commit(req.Context(), w, sess))
			for key, values := range rec.Header() {
				for _, v := range values {
					w.Header().Add(key, v)
				}
			}
			w.WriteHeader(rec.Code)
			_, _ = w.Write(rec.Body.Bytes())
		})
	})
	r.Route("/auth", handler.MountRoutes)
	r.Group(func(r chi.Router) {
		r.Use(RequireAuthenticated())
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(RoleAdmin))
			r.Route("/users", handler.MountUserRoutes)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, service, recorder
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server, service, _ := newTestServer(t)
	_, err := service.Register(context.Background(), "alice", RoleAdmin, "s3cret")
	require.NoError(t, err)

	resp := postJSON(t, server.Client(), server.URL+"/auth/login",
		`{"username":"alice","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown usernames fail identically.
	resp = postJSON(t, server.Client(), server.URL+"/auth/login",
		`{"username":"nobody","password":"s3cret"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// So do passwords below the minimum length.
	resp = postJSON(t, server.Client(), server.URL+"/auth/login",
		`{"username":"alice","password":"abc"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginCreateUserLogoutFlow(t *testing.T) {
	server, service, recorder := newTestServer(t)
	_, err := service.Register(context.Background(), "alice", RoleAdmin, "s3cret")
	require.NoError(t, err)

	jar := newCookieClient(t, server)

	// Creating a user anonymously is rejected.
	resp := postJSON(t, jar, server.URL+"/users",
		`{"username":"bob","role":"cashier","password":"p4ss"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, jar, server.URL+"/auth/login",
		`{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, jar, server.URL+"/users",
		`{"username":"bob","role":"cashier","password":"p4ss"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, "CREATE_APP_USER", entry.Action)
	require.Equal(t, "alice", entry.ActorUsername)
	require.Equal(t, "bob", entry.Detail)

	// Bob can now authenticate.
	_, err = service.Authenticate(context.Background(), "bob", "p4ss")
	require.NoError(t, err)

	resp = postJSON(t, jar, server.URL+"/auth/logout", `{}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = postJSON(t, jar, server.URL+"/users",
		`{"username":"carol","role":"analyst","password":"p4ss"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	server, service, _ := newTestServer(t)
	_, err := service.Register(context.Background(), "alice", RoleAdmin, "s3cret")
	require.NoError(t, err)

	jar := newCookieClient(t, server)
	resp := postJSON(t, jar, server.URL+"/auth/login",
		`{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, jar, server.URL+"/users",
		`{"username":"eve","role":"superuser","password":"p4ss"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func newCookieClient(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Transport: server.Client().Transport}
}
