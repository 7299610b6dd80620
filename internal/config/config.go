// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TinyRTC TinyRTCConfig `yaml:"tinyrtc"`
}

type TinyRTCConfig struct {
	Transport TransportConfig `yaml:"transport"`
	Devices   DevicesConfig   `yaml:"devices"`
	Poll      PollConfig      `yaml:"poll"`
	SettleMs  int             `yaml:"settle_ms"`
	SelfTest  *bool           `yaml:"self_test"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Diag      DiagConfig      `yaml:"diag"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Kind          string        `yaml:"kind"` // i2c | modbus-gateway | sim
	I2C           I2CConfig     `yaml:"i2c"`
	ModbusGateway GatewayConfig `yaml:"modbus_gateway"`
}

type I2CConfig struct {
	Bus string `yaml:"bus"`
}

type GatewayConfig struct {
	Mode      string `yaml:"mode"` // tcp | rtu
	Endpoint  string `yaml:"endpoint"`
	Device    string `yaml:"device"`
	BaudRate  int    `yaml:"baud_rate"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DEVICES ----

type DevicesConfig struct {
	RTCAddr    uint8 `yaml:"rtc_addr"`
	EEPROMAddr uint8 `yaml:"eeprom_addr"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- OUTPUTS ----

type HeartbeatConfig struct {
	Kind string `yaml:"kind"` // gpio | none
	Pin  string `yaml:"pin"`
}

type DiagConfig struct {
	Kind   string       `yaml:"kind"` // stdout | serial
	Serial SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud_rate"`
}

// Load reads and decodes a config file. It performs no validation and
// no defaulting; callers run Validate and Normalize afterwards.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}
