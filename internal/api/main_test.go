package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/credentials"
	"filevault/internal/database"
	"filevault/internal/models"
	"filevault/internal/storage"
	"filevault/internal/websocket"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "test-secret-key"
	testIssuer = "file-server"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*models.User)}
}

func (m *memoryRepo) CreateUser(_ context.Context, arg database.CreateUserParams) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[arg.Username]; ok {
		return nil, database.ErrUsernameTaken
	}
	u := &models.User{
		ID:           arg.ID,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.users[arg.Username] = u
	return u, nil
}

func (m *memoryRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[username], nil
}

type testEnv struct {
	server     *Server
	handler    http.Handler
	hub        *websocket.Hub
	storageDir string
}

func newTestConfig(storageDir string) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret: testSecret,
			TTL:    time.Hour,
			Issuer: testIssuer,
		},
		Auth: config.AuthConfig{
			BcryptCost:      bcrypt.MinCost,
			MaxFailedLogins: 3,
			Lockout:         time.Minute,
		},
		Storage: config.StorageConfig{
			Driver: config.StorageDriverLocal,
			Path:   storageDir,
		},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	storageDir := t.TempDir()
	cfg := newTestConfig(storageDir)

	fileStore, err := storage.NewLocalStorage(storageDir)
	require.NoError(t, err)
	t.Cleanup(func() { fileStore.Close() })

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService := auth.NewService(hasher, auth.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.TTL, auth.WithIssuer(cfg.JWT.Issuer)))

	credStore, err := credentials.NewStore(newMemoryRepo(), hasher)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := websocket.NewHub(nil)
	go hub.Run(ctx)

	limiter := auth.NewLoginLimiter(cfg.Auth.MaxFailedLogins, cfg.Auth.Lockout)
	server := NewServer(cfg, credStore, authService, fileStore, hub, limiter, nil)

	return &testEnv{
		server:     server,
		handler:    NewRouter(server),
		hub:        hub,
		storageDir: storageDir,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) postJSON(t *testing.T, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) register(t *testing.T, username, password string) {
	t.Helper()
	rr := e.postJSON(t, "/api/register", RegisterRequest{Username: username, Password: password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rr := e.postJSON(t, "/api/login", LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (e *testEnv) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	e.register(t, username, password)
	return e.login(t, username, password)
}

func newUploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}
