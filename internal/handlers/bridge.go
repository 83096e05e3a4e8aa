package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/services"
	"github.com/pandeptwidyaop/launchpad/internal/surface"
)

const (
	bridgeWriteTimeout = 10 * time.Second
	// bridgeReadLimit caps a single incoming bridge message.
	bridgeReadLimit = 64 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts clients that send no Origin header and browsers on the host itself.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// BridgeHandler serves the WebSocket bridge between a presentation client and the host.
type BridgeHandler struct {
	appService    *services.AppService
	launchService *services.LaunchService
	auditService  *services.AuditService
	surface       *surface.Surface
	logger        *zap.Logger
}

// NewBridgeHandler creates a new BridgeHandler instance.
func NewBridgeHandler(
	appService *services.AppService,
	launchService *services.LaunchService,
	auditService *services.AuditService,
	s *surface.Surface,
	logger *zap.Logger,
) *BridgeHandler {
	return &BridgeHandler{
		appService:    appService,
		launchService: launchService,
		auditService:  auditService,
		surface:       s,
		logger:        logger.Named("bridge"),
	}
}

type bridgeConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (b *bridgeConn) send(msg models.BridgeMessage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = b.ws.SetWriteDeadline(time.Now().Add(bridgeWriteTimeout))
	return b.ws.WriteJSON(msg)
}

// HandleWebSocket runs one bridge connection until the client goes away.
// GET /api/bridge
func (h *BridgeHandler) HandleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = ws.Close() }()
	ws.SetReadLimit(bridgeReadLimit)

	conn := &bridgeConn{ws: ws}
	origin := originOf(c)

	if err := h.surface.Activate(); err != nil {
		_ = conn.send(models.BridgeMessage{Type: models.BridgeError, Error: err.Error()})
		return
	}

	h.logger.Info("client connected", zap.String("ip", origin.IPAddress))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		h.logger.Info("client disconnected", zap.String("ip", origin.IPAddress))
	}()

	for {
		var msg models.BridgeMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("bridge read ended", zap.Error(err))
			}
			return
		}

		var reply *models.BridgeMessage
		switch msg.Type {
		case models.BridgeGetApps:
			reply = h.getApps(ctx, msg, origin)
		case models.BridgeLaunchApp:
			reply = h.launchApp(ctx, msg, origin, conn, &wg)
		case models.BridgeWindowControl:
			reply = h.windowControl(msg, origin)
		default:
			reply = &models.BridgeMessage{
				Type:  models.BridgeError,
				ID:    msg.ID,
				Error: "unknown message type: " + msg.Type,
			}
		}

		if reply == nil {
			continue
		}
		if err := conn.send(*reply); err != nil {
			h.logger.Debug("bridge write failed", zap.Error(err))
			return
		}
	}
}

func (h *BridgeHandler) getApps(ctx context.Context, msg models.BridgeMessage, origin services.Origin) *models.BridgeMessage {
	apps, err := h.appService.List(ctx)
	h.auditService.LogListApps(origin, len(apps), err)

	reply := &models.BridgeMessage{Type: models.BridgeGetAppsResponse, ID: msg.ID}
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.Apps = apps
	reply.Success = true
	return reply
}

// launchApp replies only once the open finished; refusals are answered at once.
func (h *BridgeHandler) launchApp(ctx context.Context, msg models.BridgeMessage, origin services.Origin, conn *bridgeConn, wg *sync.WaitGroup) *models.BridgeMessage {
	record, ch, err := h.launchService.LaunchAndSubscribe(ctx, models.LaunchRequest{ApplicationName: msg.App}, origin)
	if err != nil {
		return &models.BridgeMessage{
			Type:  models.BridgeLaunchAppResponse,
			ID:    msg.ID,
			App:   msg.App,
			Error: err.Error(),
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer h.launchService.Unsubscribe(record.ID, ch)

		var resp models.LaunchResponse
		select {
		case resp = <-ch:
		case <-ctx.Done():
			return
		}

		_ = conn.send(models.BridgeMessage{
			Type:    models.BridgeLaunchAppResponse,
			ID:      msg.ID,
			App:     msg.App,
			Success: resp.Success,
			Error:   resp.Error,
		})
	}()

	return nil
}

func (h *BridgeHandler) windowControl(msg models.BridgeMessage, origin services.Origin) *models.BridgeMessage {
	err := h.surface.Control(msg.Action)
	h.auditService.LogWindowControl(msg.Action, origin, err)

	reply := &models.BridgeMessage{
		Type:    models.BridgeWindowControlResponse,
		ID:      msg.ID,
		Action:  msg.Action,
		Success: err == nil,
	}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}
