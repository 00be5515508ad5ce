package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filevault/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestServeWsHandler_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(httptest.NewRequest(http.MethodGet, "/api/ws?token=bogus", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, invalidTokenMessage, decodeError(t, rr))
}

func TestServeWsHandler_ReceivesUploadEvents(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice", "secret123")

	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		EventType string                     `json:"event_type"`
		Payload   models.FileUploadedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, "file_uploaded", event.EventType)
	require.Equal(t, models.FileUploadedPayload{Name: "notes.txt", Size: 5, UploadedBy: "alice"}, event.Payload)
}
