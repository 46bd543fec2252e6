package types

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketAsk   = "ask"
	TypeWebsocketDelta = "delta"
	TypeWebsocketDone  = "done"
	TypeWebsocketError = "error"
)

type WebsocketRequest struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

type WebsocketResponse struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}
