package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/maskedit/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// handleWebSocket upgrades the request and serves one field session until
// the peer goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	remoteAddr := conn.RemoteAddr().String()
	connID := uuid.NewString()

	if !s.track(connID, conn) {
		logging.LogConnection(remoteAddr, "rejected_shutting_down")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	defer func() {
		_ = conn.Close()
		s.untrack(connID)
		logging.LogConnection(remoteAddr, "websocket_closed")
		s.wg.Done()
	}()
	logging.LogConnection(remoteAddr, "websocket_upgraded")
	logging.Debug("Session opened", zap.String("conn_id", connID), zap.String("remote_addr", remoteAddr))

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	sess := &fieldSession{registry: s.Registry()}
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed with error",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "received", msgType, data)

		var resp Response
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			resp = Response{Error: "invalid request: " + err.Error()}
		} else {
			resp = sess.handle(req)
		}

		if err := writeResponse(conn, remoteAddr, resp); err != nil {
			logging.Warn("Failed to send response",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

func writeResponse(conn *websocket.Conn, remoteAddr string, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	logging.LogWebSocketMessage(remoteAddr, "sent", websocket.TextMessage, data)
	return conn.WriteMessage(websocket.TextMessage, data)
}

// keepAlive pings the peer until done is closed. WriteControl may run
// concurrently with the response writer.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				logging.Debug("Ping failed", zap.String("remote_addr", conn.RemoteAddr().String()), zap.Error(err))
				return
			}
		}
	}
}
