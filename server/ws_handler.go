package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/garagego/api/realtime"
	"github.com/garagego/api/server/response"
	"github.com/garagego/api/services"
	"github.com/garagego/api/services/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second
)

// handleConversationSocket is the live path of an open thread: it loads the
// history, marks unread counterpart messages as read, then streams inserts
// until the client goes away. The thread's subscription is released on
// disconnect, so nothing keeps appending to a dead view.
func (s *Server) handleConversationSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		// native browser websockets cannot set the Authorization header
		tokenStr := c.Query("token")
		if tokenStr == "" {
			response.JSON(c, "missing token", http.StatusUnauthorized, nil, nil)
			return
		}
		if s.AuthRepository.IsTokenInBlacklist(tokenStr) {
			response.JSON(c, "access token is blacklisted", http.StatusUnauthorized, nil, nil)
			return
		}
		claims, err := jwt.ValidateAndGetClaims(tokenStr, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "invalid token", http.StatusUnauthorized, nil, nil)
			return
		}
		userID, err := jwt.UserIDFromClaims(claims)
		if err != nil {
			response.JSON(c, "invalid token", http.StatusUnauthorized, nil, nil)
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		thread, apiErr := s.ThreadService.OpenThread(userID, conversationID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			thread.Close()
			return // Upgrade already wrote the error response
		}

		go s.writeThread(conn, thread)
		s.readUntilClosed(conn)
	}
}

// writeThread pushes the loaded history and then every live append to the
// client. It owns the connection's write side.
func (s *Server) writeThread(conn *websocket.Conn, thread *services.Thread) {
	defer func() {
		thread.Close()
		conn.Close()
	}()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(gin.H{"type": "history", "messages": thread.Messages()}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-thread.Events():
			if !ok {
				return
			}
			// duplicate deliveries are dropped here, the client sees one copy
			if !thread.Append(ev.Message) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(realtime.Event{Type: ev.Type, Message: ev.Message}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readUntilClosed drains the connection so close and pong control frames are
// processed; clients send nothing else on this socket
func (s *Server) readUntilClosed(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket closed unexpectedly: %v", err)
			}
			conn.Close()
			return
		}
	}
}
