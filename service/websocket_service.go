package service

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/votann/ask-search-be/types"
)

// WebSocketService streams completion deltas for a prompt, then persists
// the finished exchange through the same path as the HTTP ask endpoint.
type WebSocketService struct {
	ai       AIService
	queries  *QueryService
	upgrader websocket.Upgrader
}

func NewWebSocketService(ai AIService, queries *QueryService) *WebSocketService {
	return &WebSocketService{
		ai:      ai,
		queries: queries,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var req types.WebsocketRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketAsk:
			s.streamAnswer(conn, r, userID, req.Payload)
		default:
			conn.WriteJSON(types.WebsocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type",
			})
		}
	}
}

func (s *WebSocketService) streamAnswer(conn *websocket.Conn, r *http.Request, userID, prompt string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		conn.WriteJSON(types.WebsocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: types.ErrEmptyPrompt.Error(),
		})
		return
	}

	answer, err := s.ai.CompleteStream(r.Context(), prompt, func(delta string) {
		conn.WriteJSON(types.WebsocketResponse{
			Type:    types.TypeWebsocketDelta,
			Payload: delta,
		})
	})
	if err != nil {
		conn.WriteJSON(types.WebsocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: err.Error(),
		})
		return
	}

	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketDone,
		Payload: answer,
	})

	// Deltas already reached the client; a persistence failure is logged,
	// not surfaced, same answer-keeping policy as the HTTP path.
	if err := s.queries.RecordExchange(r.Context(), userID, prompt, answer); err != nil {
		log.Printf("websocket exchange for user %s: persistence failed: %v", userID, err)
	}
}
