package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSync/internal/infra/appctx"
	"github.com/qrave1/RoomSync/internal/usecase"
)

type WebSocketHandler struct {
	upgrader *websocket.Upgrader
	wsCfg    config.WebSocketConfig

	connRepo   memory.ConnectionRepository
	dispatcher *usecase.Dispatcher
}

func NewWebSocketHandler(
	cfg *config.Config,
	connRepo memory.ConnectionRepository,
	dispatcher *usecase.Dispatcher,
) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		wsCfg:      cfg.WebSocket,
		connRepo:   connRepo,
		dispatcher: dispatcher,
	}
}

func (h *WebSocketHandler) Handle(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"WebSocket upgrade error",
			slog.Any(constant.Error, err),
		)
		return err
	}
	defer ws.Close()

	ctx := c.Request().Context()

	// userID пустой, если JWT выключен
	userID, _ := appctx.UserID(ctx)

	conn := memory.NewConnection(uuid.NewString(), userID, h.wsCfg.SendBuffer)
	h.connRepo.Add(conn)

	if err = h.dispatcher.Connect(ctx, conn.ID); err != nil {
		slog.Error("register connection", slog.String(constant.ConnectionID, conn.ID), slog.Any(constant.Error, err))
		h.connRepo.Remove(conn.ID)
		return nil
	}

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		h.writePump(ws, conn)
	}()

	h.readLoop(c, ws, conn.ID)

	if err = h.dispatcher.Disconnect(ctx, conn.ID); err != nil {
		// цикл уже остановлен, убираем соединение сами
		h.connRepo.Remove(conn.ID)
	}

	<-pumpDone

	return nil
}

func (h *WebSocketHandler) readLoop(c echo.Context, ws *websocket.Conn, connID string) {
	ws.SetReadLimit(h.wsCfg.MaxMessageSize)

	if err := ws.SetReadDeadline(time.Now().Add(h.wsCfg.PongWait)); err != nil {
		return
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.wsCfg.PongWait))
	})

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			h.handleWebsocketError(connID, err)
			return
		}

		if err = h.dispatcher.Dispatch(c.Request().Context(), connID, msg); err != nil {
			slog.Error("dispatch websocket message", slog.String(constant.ConnectionID, connID), slog.Any(constant.Error, err))
			return
		}
	}
}

// writePump - единственный писатель в сокет: очередь соединения и ping
func (h *WebSocketHandler) writePump(ws *websocket.Conn, conn *memory.Connection) {
	ticker := time.NewTicker(h.wsCfg.PingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case msg, ok := <-conn.Send():
			_ = ws.SetWriteDeadline(time.Now().Add(h.wsCfg.WriteWait))

			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("write to websocket", slog.String(constant.ConnectionID, conn.ID), slog.Any(constant.Error, err))
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(h.wsCfg.WriteWait))

			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("ping failed", slog.String(constant.ConnectionID, conn.ID), slog.Any(constant.Error, err))
				return
			}

		case <-conn.Kicked():
			_ = ws.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "outbound queue overflow"),
				time.Now().Add(h.wsCfg.WriteWait),
			)
			return
		}
	}
}

func (h *WebSocketHandler) handleWebsocketError(connID string, err error) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
			slog.Info("connection closed by client", slog.String(constant.ConnectionID, connID))
		default:
			slog.Warn("websocket close error", slog.String(constant.ConnectionID, connID), slog.Int("code", closeErr.Code))
		}
		return
	}

	slog.Warn(
		"websocket read",
		slog.String(constant.ConnectionID, connID),
		slog.Any(constant.Error, err),
	)
}
