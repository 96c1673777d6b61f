package daemon

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chargectl/chargectl/pkg/config"
	"github.com/chargectl/chargectl/pkg/smc"
	"github.com/chargectl/chargectl/pkg/types"
)

func float32LE(f float64) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
	return b
}

// setupTestDaemon wires the package globals to a mocked SMC and a
// throwaway config file, and returns the router.
func setupTestDaemon(t *testing.T, prefill map[string][]byte) *gin.Engine {
	t.Helper()

	var err error
	conf, err = config.NewFile(filepath.Join(t.TempDir(), "chargectl.json"))
	if err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	smcConn = smc.NewMock(prefill)

	return setupRoutes()
}

func TestGetChargingStatus(t *testing.T) {
	router := setupTestDaemon(t, map[string][]byte{
		smc.DisableChargingKey:  {0x0},
		smc.InhibitChargingCKey: {0x2},
		smc.InhibitChargingBKey: {0x2},
		smc.LidClosedKey:        {0x1},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/charging-status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /charging-status returned %d: %s", w.Code, w.Body.String())
	}

	var status types.ChargingStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if status.ForceDischarging {
		t.Error("ForceDischarging = true, want false")
	}
	if !status.InhibitCharging {
		t.Error("InhibitCharging = false, want true for agreeing registers")
	}
	if !status.LidClosed {
		t.Error("LidClosed = false, want true")
	}
}

func TestSetChargingMode(t *testing.T) {
	router := setupTestDaemon(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/charging-mode", strings.NewReader(`"force-discharge"`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("PUT /charging-mode returned %d: %s", w.Code, w.Body.String())
	}

	v, err := smcConn.Read(smc.DisableChargingKey)
	if err != nil {
		t.Fatalf("failed to read back register: %v", err)
	}
	if len(v.Bytes) != 1 || v.Bytes[0] != 0x1 {
		t.Errorf("%s = %v after force-discharge, want [0x1]", smc.DisableChargingKey, v.Bytes)
	}
}

func TestSetChargingModeRejectsUnknown(t *testing.T) {
	router := setupTestDaemon(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/charging-mode", strings.NewReader(`"turbo"`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("PUT /charging-mode with unknown mode returned %d, want 400", w.Code)
	}
}

func TestGetPowerDistribution(t *testing.T) {
	router := setupTestDaemon(t, map[string][]byte{
		smc.BatteryPowerKey:  float32LE(-5.2),
		smc.ExternalPowerKey: float32LE(65.0),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/power-distribution", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /power-distribution returned %d: %s", w.Code, w.Body.String())
	}

	var power types.PowerDistribution
	if err := json.Unmarshal(w.Body.Bytes(), &power); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if math.Abs(power.SystemPower-59.8) > 1e-5 {
		t.Errorf("SystemPower = %v, want 59.8", power.SystemPower)
	}
	if power.SystemPower != power.BatteryPower+power.ExternalPower {
		t.Errorf("SystemPower = %v, want battery+external", power.SystemPower)
	}
}

func TestSetMagSafeLed(t *testing.T) {
	router := setupTestDaemon(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/magsafe-led", strings.NewReader(`"green"`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("PUT /magsafe-led returned %d: %s", w.Code, w.Body.String())
	}

	var applied string
	if err := json.Unmarshal(w.Body.Bytes(), &applied); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if applied != "green" {
		t.Errorf("applied led state = %q, want %q", applied, "green")
	}
}

func TestGetVersion(t *testing.T) {
	router := setupTestDaemon(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /version returned %d", w.Code)
	}
}
