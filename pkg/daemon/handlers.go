package daemon

import (
	"errors"
	"net/http"

	"github.com/distatus/battery"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chargectl/chargectl/pkg/config"
	"github.com/chargectl/chargectl/pkg/smc"
	"github.com/chargectl/chargectl/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getChargingStatus(c *gin.Context) {
	status, err := smcConn.ChargingStatus()
	if err != nil {
		logrus.Errorf("getChargingStatus failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, status)
}

func setChargingMode(c *gin.Context) {
	var m string
	if err := c.BindJSON(&m); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	mode, err := smc.ParseChargingMode(m)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := smcConn.SetChargingMode(mode); err != nil {
		logrus.Errorf("setChargingMode failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set charging mode to %s", mode)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getPowerDistribution(c *gin.Context) {
	power, err := smcConn.PowerDistribution()
	if err != nil {
		logrus.Errorf("getPowerDistribution failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, power)
}

func getMagSafeLed(c *gin.Context) {
	state, err := smcConn.GetMagSafeLedState()
	if err != nil {
		logrus.Errorf("getMagSafeLed failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, state.String())
}

func setMagSafeLed(c *gin.Context) {
	var s string
	if err := c.BindJSON(&s); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	state, err := smc.ParseMagSafeLedState(s)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	applied, err := smcConn.SetMagSafeLedState(state)
	if err != nil {
		logrus.Errorf("setMagSafeLed failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set magsafe led to %s (controller reports %s)", state, applied)

	// The controller may coerce the requested state, so the read-back
	// value is returned, not the request.
	c.IndentedJSON(http.StatusCreated, applied.String())
}

func setControlMagSafeLED(c *gin.Context) {
	// Check if MagSafe is supported first. If not, return error.
	if !smcConn.CheckMagSafeExistence() {
		err := errors.New("this Mac does not have a MagSafe LED")
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	var b bool
	if err := c.BindJSON(&b); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetControlMagSafeLED(b)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set control magsafe led to %t", b)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getBatteryInfo(c *gin.Context) {
	batteries, err := battery.GetAll()
	if err != nil {
		logrus.Errorf("getBatteryInfo failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if len(batteries) == 0 {
		logrus.Errorf("no batteries found")
		c.IndentedJSON(http.StatusInternalServerError, "no batteries found")
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no batteries found"))
		return
	}

	bat := batteries[0] // MacBooks only have one battery. No need to support more.
	if bat.State == battery.Discharging {
		bat.ChargeRate = -bat.ChargeRate
	}

	c.IndentedJSON(http.StatusOK, bat)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
