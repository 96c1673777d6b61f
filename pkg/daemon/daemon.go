package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chargectl/chargectl/pkg/config"
	"github.com/chargectl/chargectl/pkg/smc"
)

var (
	smcConn *smc.Conn
	conf    config.Config
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/config", getConfig)
	router.GET("/charging-status", getChargingStatus)
	router.PUT("/charging-mode", setChargingMode)
	router.GET("/power-distribution", getPowerDistribution)
	router.GET("/magsafe-led", getMagSafeLed)
	router.PUT("/magsafe-led", setMagSafeLed)
	router.PUT("/control-magsafe-led", setControlMagSafeLED)
	router.GET("/battery-info", getBatteryInfo)
	router.GET("/version", getVersion)

	return router
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// The SMC connection opens lazily on the first register access, so
	// a controller that is slow to come up does not fail startup.
	smcConn = smc.New()

	applyDefaultChargingMode()

	stopLoop := make(chan struct{})
	go ledSyncLoop(stopLoop)

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	close(stopLoop)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	// Leave the controller in its neutral state before exiting.
	smcConn.ResetIfPossible()

	logrus.Info("closing smc connection")
	err = smcConn.Close()
	if err != nil {
		logrus.Errorf("failed to close smc connection: %v", err)
	}

	logrus.Info("exiting")
	return nil
}

// applyDefaultChargingMode applies the configured startup mode.
// Best-effort: a failure is logged but does not prevent the daemon from
// serving requests.
func applyDefaultChargingMode() {
	mode, err := smc.ParseChargingMode(conf.DefaultChargingMode())
	if err != nil {
		logrus.Errorf("invalid default charging mode in config: %v", err)
		return
	}

	if err := smcConn.SetChargingMode(mode); err != nil {
		logrus.Errorf("failed to apply default charging mode %s: %v", mode, err)
		return
	}

	logrus.Infof("applied default charging mode %s", mode)
}
