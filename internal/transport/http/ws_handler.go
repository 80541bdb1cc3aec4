package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
)

const sendBuffer = 16

type WSHandler struct {
	service  *app.QuizService
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.SugaredLogger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type choosePayload struct {
	Answer string `json:"answer"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(message string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: message}}
}

// ServeWS upgrades the request, starts a game for the username query parameter
// and streams its state until either side goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	game, err := h.service.Start(r.Context(), username)
	if err != nil {
		h.logger.Warnw("game start failed", "username", username, "error", err)
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	sessionID := game.ID()
	logger := h.logger.With("session", sessionID)

	updates, cancel, err := h.service.Subscribe(r.Context(), sessionID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err.Error()))
		h.service.Leave(context.Background(), sessionID)
		return
	}
	defer cancel()
	defer h.service.Leave(context.Background(), sessionID)

	send := make(chan outboundMessage, sendBuffer)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only the writer goroutine touches conn for writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debugw("ws write error", "error", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "state", Payload: snapshot}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reply := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(r.Context(), sessionID, inbound); err != nil {
			reply(errorMessage(err.Error()))
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
	logger.Infow("player disconnected")
}

// dispatch applies one client message. State changes reach the client through
// the subscription, so only failures are returned.
func (h *WSHandler) dispatch(ctx context.Context, sessionID string, inbound inboundMessage) error {
	var err error
	switch inbound.Type {
	case "choose":
		var payload choosePayload
		if jsonErr := json.Unmarshal(inbound.Payload, &payload); jsonErr != nil {
			return errInvalidPayload
		}
		_, err = h.service.Choose(ctx, sessionID, payload.Answer)
	case "submit":
		_, err = h.service.Submit(ctx, sessionID)
	case "skip":
		_, err = h.service.Skip(ctx, sessionID)
	case "continue":
		_, err = h.service.Continue(ctx, sessionID)
	default:
		return errUnsupportedMessage
	}
	return err
}
