package e2e

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseWsSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.MasterAddr == "" {
		s.T().Skip("MASTER_ADDR is not set, skipping end-to-end suite")
	}
}

// WsConn opens a WebSocket session for one display name, with a colorized header in logs
func (s *BaseWsSuite) WsConn(t *testing.T, name string, displayName string) *websocket.Conn {
	// 1. Print a colorized header for the connection step in logs
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	// 2. Dial the signal endpoint for the given display name
	endpoint := url.URL{
		Scheme: "ws",
		Host:   s.Config.MasterAddr,
		Path:   "/ws/" + url.PathEscape(displayName),
	}
	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), nil)
	s.Require().NoError(err, "Failed to connect to signal server at "+s.Config.MasterAddr)
	return conn
}

// ReadFrame blocks until the next frame arrives and returns it decoded.
// Raw frames are logged when E2E_DEBUG_JSON is enabled.
func (s *BaseWsSuite) ReadFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	_, raw, err := conn.ReadMessage()
	s.Require().NoError(err, "No frame received before the read deadline")

	if s.Config.DebugJSON {
		t.Log("FRAME:", string(raw))
	}

	var frame map[string]any
	s.Require().NoError(json.Unmarshal(raw, &frame))
	return frame
}

// SendColor issues a color_change command on an open connection
func (s *BaseWsSuite) SendColor(conn *websocket.Conn, colorName string) {
	s.Require().NoError(conn.WriteJSON(map[string]string{
		"type":  "color_change",
		"color": colorName,
	}))
}
