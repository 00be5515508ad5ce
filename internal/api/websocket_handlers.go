package api

import (
	"net/http"

	"filevault/internal/websocket"

	"go.uber.org/zap"
)

// @Summary      Subscribe to file events
// @Description  Upgrades to a websocket that receives a JSON event for every upload. Browsers cannot set headers on websocket requests, so the token may be passed as a query parameter.
// @Tags         events
// @Param        token  query  string  false  "Access token (alternative to the Authorization header)"
// @Success      101
// @Failure      401  {object}  ErrorResponse "Unauthorized"
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		tokenString, _ = bearerToken(r)
	}
	if tokenString == "" {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	username, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		s.logger.Debug("websocket token rejected", zap.Error(err))
		writeError(w, http.StatusUnauthorized, invalidTokenMessage)
		return
	}

	if s.wsHub == nil {
		writeError(w, http.StatusServiceUnavailable, "Events are not available")
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(s.wsHub, conn, username)
	if !s.wsHub.Add(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
