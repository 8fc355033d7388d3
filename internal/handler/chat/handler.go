package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lawtalk/backend/internal/model/chat"
	"github.com/lawtalk/backend/internal/service/ai"
	chatService "github.com/lawtalk/backend/internal/service/chat"
	"github.com/lawtalk/backend/pkg/utils"
)

// SessionHeader lets a client pick its conversation without touching the body.
const SessionHeader = "X-Session-ID"

const detailPrefix = "오류 발생: "

// Handler 聊天服务的HTTP处理器
type Handler struct {
	assistant *ai.Service
	history   *chatService.Service
	upgrader  websocket.Upgrader
}

// New 创建聊天处理器。assistant 为 nil 时聊天请求返回配置错误。
func New(assistant *ai.Service, history *chatService.Service) *Handler {
	return &Handler{
		assistant: assistant,
		history:   history,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/ws", h.handleWebSocket)
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Delete("/session/{sessionID}", h.handleResetSession)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, fmt.Errorf("%w: %v", ai.ErrMalformedInput, err))
		return
	}

	sessionID := resolveSessionID(r, req.SessionID, chat.DefaultSessionID)
	resp, err := h.reply(r.Context(), sessionID, req)
	if err != nil {
		log.Printf("[chat] session=%s failed (%s): %v", sessionID, ai.Classify(err), err)
		respondFailure(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// reply answers the request's current query and records the exchange on success.
func (h *Handler) reply(ctx context.Context, sessionID string, req chat.ChatRequest) (resp chat.ChatResponse, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = chat.ChatResponse{}, fmt.Errorf("panic: %v", p)
		}
	}()

	if h.assistant == nil {
		return chat.ChatResponse{}, ai.ErrAgentUnavailable
	}

	query := req.CurrentQuery()
	history, err := h.history.History(ctx, sessionID)
	if err != nil {
		return chat.ChatResponse{}, fmt.Errorf("failed to load history: %w", err)
	}

	answer, err := h.assistant.Answer(ctx, query, history)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	if err := h.history.Append(ctx, sessionID, chat.Exchange{Question: query, Answer: answer}); err != nil {
		return chat.ChatResponse{}, fmt.Errorf("failed to record exchange: %w", err)
	}

	return chat.NewChatResponse(answer), nil
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.history.CreateSession(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.history.GetSession(r.Context(), sessionID)
	if err != nil {
		respondSessionFailure(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.history.Reset(r.Context(), sessionID); err != nil {
		respondSessionFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resolveSessionID(r *http.Request, fromBody, fallback string) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return fallback
}

// statusFor maps an error kind to the HTTP status the client sees.
func statusFor(err error) int {
	switch ai.Classify(err) {
	case ai.KindMalformedInput:
		return http.StatusBadRequest
	case ai.KindConfiguration:
		return http.StatusServiceUnavailable
	case ai.KindTimeout:
		return http.StatusGatewayTimeout
	case ai.KindRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondFailure(w http.ResponseWriter, err error) {
	utils.RespondError(w, statusFor(err), detailPrefix+err.Error())
}

func respondSessionFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, detailPrefix+err.Error())
		return
	}
	respondFailure(w, err)
}
