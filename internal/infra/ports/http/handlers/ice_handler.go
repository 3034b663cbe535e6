package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pion/webrtc/v4"

	"github.com/qrave1/RoomSync/internal/application/config"
)

// credentialTTL - время жизни временных TURN кредов
const credentialTTL = time.Hour

type IceHandler struct {
	cfg *config.Config
	now func() time.Time
}

func NewIceHandler(cfg *config.Config) *IceHandler {
	return &IceHandler{cfg: cfg, now: time.Now}
}

type iceServersResponse struct {
	ICEServers []webrtc.ICEServer `json:"ice_servers"`
}

// IceServers отдаёт STUN и, если настроен coturn, TURN с временными кредами
func (h *IceHandler) IceServers(c echo.Context) error {
	servers := []webrtc.ICEServer{h.cfg.StunServer}

	if h.cfg.CoturnServer.Enabled() {
		username := fmt.Sprintf("%d", h.now().Add(credentialTTL).Unix())

		// Создаём HMAC-SHA1 с использованием static-auth-secret
		mac := hmac.New(sha1.New, []byte(h.cfg.CoturnServer.Secret))
		mac.Write([]byte(username))
		password := base64.StdEncoding.EncodeToString(mac.Sum(nil))

		servers = append(servers, webrtc.ICEServer{
			URLs: []string{
				h.cfg.TurnUDPServer.URLs[0],
				h.cfg.TurnTCPServer.URLs[0],
			},
			Username:   username,
			Credential: password,
		})
	}

	return c.JSON(http.StatusOK, iceServersResponse{ICEServers: servers})
}
