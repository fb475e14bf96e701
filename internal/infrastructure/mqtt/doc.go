// Package mqtt provides the broker session used by the Prusa MQTT bridge.
//
// This package manages:
//   - A single connection to the broker with a randomised client id
//   - Publishing telemetry to {prefix}/{suffix} at QoS 0
//   - A retained availability topic, {prefix}/status, with Last Will
//   - Idempotent, nil-safe shutdown
//
// # Reconnection
//
// The client does not reconnect. If an established session drops, the
// SetOnDisconnect callback fires once and every later Publish fails with
// ErrNotConnected until the process is restarted.
//
// # Usage
//
//	client := mqtt.New(cfg.MQTT())
//	if err := client.Connect(); err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.PublishString("bed", "60.5")
package mqtt
