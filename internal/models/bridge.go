package models

// Bridge message types exchanged over the WebSocket.
const (
	BridgeGetApps               = "get-apps"
	BridgeGetAppsResponse       = "get-apps-response"
	BridgeLaunchApp             = "launch-app"
	BridgeLaunchAppResponse     = "launch-app-response"
	BridgeWindowControl         = "window-control"
	BridgeWindowControlResponse = "window-control-response"
	BridgeError                 = "error"
)

// BridgeMessage is the single envelope used in both directions on the bridge.
// ID pairs a response with its request; only the fields relevant to Type are set.
type BridgeMessage struct {
	Type    string   `json:"type"`
	ID      string   `json:"id,omitempty"`
	App     string   `json:"app,omitempty"`
	Action  string   `json:"action,omitempty"`
	Apps    []string `json:"apps,omitempty"`
	Error   string   `json:"error,omitempty"`
	Success bool     `json:"success"`
}
