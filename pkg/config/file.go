package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chargectl/chargectl/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		DefaultChargingMode: ptr.To("auto"),
		ControlMagSafeLED:   ptr.To(false),
		AllowNonRootAccess:  ptr.To(false),
		LoopIntervalSeconds: ptr.To(60),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	DefaultChargingMode *string `json:"defaultChargingMode,omitempty"`
	ControlMagSafeLED   *bool   `json:"controlMagSafeLED,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty"`
	LoopIntervalSeconds *int    `json:"loopIntervalSeconds,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		DefaultChargingMode: ptr.To(c.DefaultChargingMode()),
		ControlMagSafeLED:   ptr.To(c.ControlMagSafeLED()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
		LoopIntervalSeconds: ptr.To(int(c.LoopInterval() / time.Second)),
	}

	return rawConfig, nil
}

func (f *File) DefaultChargingMode() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DefaultChargingMode != nil {
		return *f.c.DefaultChargingMode
	}
	return *defaultFileConfig.DefaultChargingMode
}

func (f *File) ControlMagSafeLED() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ControlMagSafeLED != nil {
		return *f.c.ControlMagSafeLED
	}
	return *defaultFileConfig.ControlMagSafeLED
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.AllowNonRootAccess != nil {
		return *f.c.AllowNonRootAccess
	}
	return *defaultFileConfig.AllowNonRootAccess
}

func (f *File) LoopInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := *defaultFileConfig.LoopIntervalSeconds
	if f.c.LoopIntervalSeconds != nil {
		seconds = *f.c.LoopIntervalSeconds
	}
	if seconds <= 0 {
		seconds = *defaultFileConfig.LoopIntervalSeconds
	}

	return time.Duration(seconds) * time.Second
}

func (f *File) SetDefaultChargingMode(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DefaultChargingMode = &s
}

func (f *File) SetControlMagSafeLED(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ControlMagSafeLED = &b
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"defaultChargingMode": f.DefaultChargingMode(),
		"controlMagsafeLed":   f.ControlMagSafeLED(),
		"allowNonRootAccess":  f.AllowNonRootAccess(),
		"loopInterval":        f.LoopInterval().String(),
	}
}
