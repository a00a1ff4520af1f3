package mqtt

import (
	"fmt"
	"strings"
)

// Topics builds the per-device topic tree: <prefix>/devices/<externalId>/{commands,state}.
type Topics struct {
	Prefix string
}

func (t Topics) DeviceCommand(externalID string) string {
	return fmt.Sprintf("%s/devices/%s/commands", t.Prefix, externalID)
}

func (t Topics) DeviceState(externalID string) string {
	return fmt.Sprintf("%s/devices/%s/state", t.Prefix, externalID)
}

func (t Topics) AllDeviceStates() string {
	return t.DeviceState("+")
}

// ParseDeviceState extracts the external id from a state topic.
func (t Topics) ParseDeviceState(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/devices/")
	if !ok {
		return "", false
	}
	externalID, ok := strings.CutSuffix(rest, "/state")
	if !ok || externalID == "" || strings.Contains(externalID, "/") {
		return "", false
	}
	return externalID, true
}
