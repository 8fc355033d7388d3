package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lawtalk/backend/internal/model/chat"
	"github.com/lawtalk/backend/internal/service/ai"
	chatService "github.com/lawtalk/backend/internal/service/chat"
)

const (
	wsReadTimeout  = 5 * time.Minute
	wsPingInterval = 30 * time.Second
)

// handleWebSocket serves chat over a websocket. Every text frame is a
// ChatRequest and is answered with a ChatResponse or a detail frame.
// The session id is echoed in the upgrade response; a generated one lives
// only as long as the connection.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(r, r.URL.Query().Get("sessionId"), "")
	generated := sessionID == ""
	if generated {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, http.Header{SessionHeader: []string{sessionID}})
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if generated {
		defer h.forgetSession(sessionID)
	}

	log.Printf("[ws] new connection for session: %s", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})
	go pingLoop(ctx, conn)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			return
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			h.writeFrame(conn, failureFrame(fmt.Errorf("%w: text frames only", ai.ErrMalformedInput)))
			continue
		}

		var req chat.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.writeFrame(conn, failureFrame(fmt.Errorf("%w: %v", ai.ErrMalformedInput, err)))
			continue
		}

		resp, err := h.reply(ctx, sessionID, req)
		if err != nil {
			log.Printf("[ws] session=%s failed (%s): %v", sessionID, ai.Classify(err), err)
			h.writeFrame(conn, failureFrame(err))
			continue
		}
		h.writeFrame(conn, resp)
	}
}

func (h *Handler) forgetSession(sessionID string) {
	err := h.history.Reset(context.Background(), sessionID)
	if err != nil && !errors.Is(err, chatService.ErrSessionNotFound) {
		log.Printf("[ws] failed to drop session %s: %v", sessionID, err)
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, payload any) {
	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}

func failureFrame(err error) map[string]string {
	return map[string]string{"detail": detailPrefix + err.Error()}
}

func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
