// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	t := cfg.TinyRTC

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	switch t.Transport.Kind {
	case "i2c", "sim":
		// i2c bus name may be empty: the first registered bus is used.

	case "modbus-gateway":
		gw := t.Transport.ModbusGateway
		switch gw.Mode {
		case "tcp":
			if gw.Endpoint == "" {
				return fmt.Errorf("transport: modbus-gateway tcp mode requires endpoint")
			}
		case "rtu":
			if gw.Device == "" {
				return fmt.Errorf("transport: modbus-gateway rtu mode requires device")
			}
		default:
			return fmt.Errorf("transport: unknown modbus-gateway mode %q", gw.Mode)
		}
		if gw.TimeoutMs < 0 {
			return fmt.Errorf("transport: modbus-gateway timeout_ms must be >= 0")
		}

	default:
		return fmt.Errorf("transport: unknown kind %q", t.Transport.Kind)
	}

	// ------------------------------------------------------------
	// DEVICE ADDRESSES (7-bit)
	// ------------------------------------------------------------

	if t.Devices.RTCAddr > 0x7F {
		return fmt.Errorf("devices: rtc_addr %#x is not a 7-bit address", t.Devices.RTCAddr)
	}
	if t.Devices.EEPROMAddr > 0x7F {
		return fmt.Errorf("devices: eeprom_addr %#x is not a 7-bit address", t.Devices.EEPROMAddr)
	}
	if t.Devices.RTCAddr != 0 && t.Devices.RTCAddr == t.Devices.EEPROMAddr {
		return fmt.Errorf("devices: rtc_addr and eeprom_addr collide at %#x", t.Devices.RTCAddr)
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if t.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must be >= 0")
	}
	if t.SettleMs < 0 {
		return fmt.Errorf("settle_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// OUTPUTS
	// ------------------------------------------------------------

	switch t.Heartbeat.Kind {
	case "", "none":
	case "gpio":
		if t.Heartbeat.Pin == "" {
			return fmt.Errorf("heartbeat: gpio kind requires pin")
		}
	default:
		return fmt.Errorf("heartbeat: unknown kind %q", t.Heartbeat.Kind)
	}

	switch t.Diag.Kind {
	case "", "stdout":
	case "serial":
		if t.Diag.Serial.Device == "" {
			return fmt.Errorf("diag: serial kind requires device")
		}
	default:
		return fmt.Errorf("diag: unknown kind %q", t.Diag.Kind)
	}

	return nil
}
