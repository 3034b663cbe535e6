package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrave1/RoomSync/internal/application/config"
)

func serveIce(t *testing.T, h *IceHandler) iceServersResponse {
	t.Helper()

	e := echo.New()
	e.GET("/api/v1/ice", h.IceServers)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ice", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp iceServersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestIceServersStunOnly(t *testing.T) {
	cfg := &config.Config{StunServer: webrtc.ICEServer{URLs: []string{"stun:stun.example.com:3478"}}}

	resp := serveIce(t, NewIceHandler(cfg))

	require.Len(t, resp.ICEServers, 1)
	assert.Equal(t, []string{"stun:stun.example.com:3478"}, resp.ICEServers[0].URLs)
}

func TestIceServersWithTurnCredentials(t *testing.T) {
	cfg := &config.Config{
		StunServer:    webrtc.ICEServer{URLs: []string{"stun:stun.example.com:3478"}},
		TurnUDPServer: webrtc.ICEServer{URLs: []string{"turn:turn.example.com:3478?transport=udp"}},
		TurnTCPServer: webrtc.ICEServer{URLs: []string{"turn:turn.example.com:3478?transport=tcp"}},
		CoturnServer:  config.CoturnConfig{Host: "turn.example.com:3478", Secret: "s3cret"},
	}

	h := NewIceHandler(cfg)
	h.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	resp := serveIce(t, h)
	require.Len(t, resp.ICEServers, 2)

	turn := resp.ICEServers[1]
	assert.Len(t, turn.URLs, 2)
	assert.Equal(t, "1700003600", turn.Username)

	mac := hmac.New(sha1.New, []byte("s3cret"))
	mac.Write([]byte("1700003600"))
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), turn.Credential)
}
