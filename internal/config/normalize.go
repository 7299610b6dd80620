// internal/config/normalize.go
package config

// Normalize applies post-validation defaulting.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.TinyRTC

	// Fixed bus addresses of the Tiny RTC board parts.
	if t.Devices.RTCAddr == 0 {
		t.Devices.RTCAddr = 0x68
	}
	if t.Devices.EEPROMAddr == 0 {
		t.Devices.EEPROMAddr = 0x50
	}

	if t.Poll.IntervalMs == 0 {
		t.Poll.IntervalMs = 1000
	}
	if t.SettleMs == 0 {
		t.SettleMs = 1000
	}

	// Self-test defaults on; disabling it is the explicit choice.
	if t.SelfTest == nil {
		on := true
		t.SelfTest = &on
	}

	if t.Heartbeat.Kind == "" {
		t.Heartbeat.Kind = "none"
	}
	if t.Diag.Kind == "" {
		t.Diag.Kind = "stdout"
	}
	if t.Diag.Kind == "serial" && t.Diag.Serial.BaudRate == 0 {
		t.Diag.Serial.BaudRate = 115200
	}
	if t.Transport.Kind == "modbus-gateway" {
		if t.Transport.ModbusGateway.TimeoutMs == 0 {
			t.Transport.ModbusGateway.TimeoutMs = 500
		}
		if t.Transport.ModbusGateway.Mode == "rtu" && t.Transport.ModbusGateway.BaudRate == 0 {
			t.Transport.ModbusGateway.BaudRate = 19200
		}
	}
}
