package letta

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format for the chat relay.
type wsRequest struct {
	Type    string `json:"type"` // "chat" or "search"
	AgentID string `json:"agent_id,omitempty"`
	Content string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type    string `json:"type"` // "response" or "error"
	AgentID string `json:"agent_id,omitempty"`
	Content string `json:"content"`
}

// RegisterChatRelay mounts a WebSocket endpoint that relays chat messages
// to the Letta platform, so embedding pages can hold a live conversation
// without issuing one HTTP round trip per message.
func RegisterChatRelay(r chi.Router, client *Client, beauty *BeautyAgent) {
	r.Get("/api/v1/letta/ws", handleChatRelay(client, beauty))
}

func handleChatRelay(client *Client, beauty *BeautyAgent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("letta: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("letta: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWSError(conn, "", "invalid message format")
				continue
			}
			if req.Content == "" {
				sendWSError(conn, req.AgentID, "content is required")
				continue
			}

			switch req.Type {
			case "chat":
				if req.AgentID == "" {
					sendWSError(conn, "", "agent_id is required for chat messages")
					continue
				}
				reply, err := client.Chat(r.Context(), req.AgentID, req.Content)
				if err != nil {
					sendWSError(conn, req.AgentID, "chat failed: "+err.Error())
					continue
				}
				sendWSResponse(conn, wsResponse{Type: "response", AgentID: reply.AgentID, Content: reply.Message})
			case "search":
				result, err := beauty.Search(r.Context(), req.Content)
				if err != nil {
					sendWSError(conn, "", "search failed: "+err.Error())
					continue
				}
				sendWSResponse(conn, wsResponse{Type: "response", AgentID: result.AgentID, Content: result.AgentResponse})
			default:
				sendWSError(conn, req.AgentID, "unknown message type: "+req.Type)
			}
		}
	}
}

func sendWSResponse(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("letta: websocket write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, agentID, message string) {
	sendWSResponse(conn, wsResponse{Type: "error", AgentID: agentID, Content: message})
}
