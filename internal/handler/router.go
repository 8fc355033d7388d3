package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lawtalk/backend/internal/handler/chat"
	middlewarePkg "github.com/lawtalk/backend/internal/middleware"
	aiService "github.com/lawtalk/backend/internal/service/ai"
	chatService "github.com/lawtalk/backend/internal/service/chat"
	"github.com/lawtalk/backend/pkg/utils"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "법률 관련 채팅 서비스"

// NewRouter wires HTTP routes to core services.
func NewRouter(aiSvc *aiService.Service, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": ServiceName})
	})

	chat.New(aiSvc, chatSvc).RegisterRoutes(r)

	return r
}
