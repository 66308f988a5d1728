package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrewpaige1/lexideck-api/auth"
	"github.com/andrewpaige1/lexideck-api/config"
	"github.com/andrewpaige1/lexideck-api/middleware"
	"github.com/andrewpaige1/lexideck-api/store"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testServer struct {
	h       *Handler
	store   *store.Store
	handler http.Handler
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := config.Connect("sqlite:file::memory:", false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	st := store.New(db)
	iss, err := auth.NewIssuer("test-secret", "lexideck-api", "lexideck-app")
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()

	h := New(st, iss, log)
	h.Now = func() time.Time { return t0 }
	h.Rand = rand.New(rand.NewSource(1))

	verify, err := middleware.EnsureValidToken(iss, log)
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Routes(mux, middleware.RequireUser(st, log))

	return &testServer{h: h, store: st, handler: verify(mux)}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

// mustDo performs the request, requires the status and decodes data into out.
func (ts *testServer) mustDo(t *testing.T, method, path, token string, body any, status int, out any) envelope {
	t.Helper()
	code, env := ts.do(t, method, path, token, body)
	require.Equal(t, status, code, env.Message)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// signup registers a user and returns its token and id.
func (ts *testServer) signup(t *testing.T, name string) (string, string) {
	t.Helper()
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	ts.mustDo(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "secret123",
	}, http.StatusCreated, &data)
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}
