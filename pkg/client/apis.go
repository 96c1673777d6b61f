package client

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/chargectl/chargectl/pkg/config"
	"github.com/chargectl/chargectl/pkg/powerinfo"
	"github.com/chargectl/chargectl/pkg/types"
)

func (c *Client) SetChargingMode(mode string) (string, error) {
	payload, err := json.Marshal(mode)
	if err != nil {
		return "", err
	}
	return c.Put("/charging-mode", string(payload))
}

func (c *Client) GetChargingStatus() (*types.ChargingStatus, error) {
	ret, err := c.Get("/charging-status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get charging status")
	}

	var status types.ChargingStatus
	if err := json.Unmarshal([]byte(ret), &status); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal charging status")
	}

	return &status, nil
}

func (c *Client) GetPowerDistribution() (*types.PowerDistribution, error) {
	ret, err := c.Get("/power-distribution")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get power distribution")
	}

	var power types.PowerDistribution
	if err := json.Unmarshal([]byte(ret), &power); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal power distribution")
	}

	return &power, nil
}

func (c *Client) SetMagSafeLed(state string) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", err
	}

	ret, err := c.Put("/magsafe-led", string(payload))
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to set magsafe led")
	}

	return parseStringResponse(ret)
}

func (c *Client) GetMagSafeLed() (string, error) {
	ret, err := c.Get("/magsafe-led")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get magsafe led")
	}

	return parseStringResponse(ret)
}

func (c *Client) SetControlMagSafeLED(enabled bool) (string, error) {
	return c.Put("/control-magsafe-led", strconv.FormatBool(enabled))
}

func (c *Client) GetBatteryInfo() (*powerinfo.Battery, error) {
	ret, err := c.Get("/battery-info")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery info")
	}

	var bat powerinfo.Battery
	if err := json.Unmarshal([]byte(ret), &bat); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery info")
	}

	return &bat, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	return parseStringResponse(ret)
}

// parseStringResponse unwraps a JSON-encoded string body. Plain-text
// bodies are returned trimmed.
func parseStringResponse(body string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		return strings.TrimSpace(body), nil
	}
	return s, nil
}
