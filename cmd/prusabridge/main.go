// Prusa MQTT Bridge
//
// Polls a PrusaLink printer's status endpoint every few seconds and
// republishes bed temperature, nozzle temperature, printer state and job
// progress to an MQTT broker.
//
// Exit codes: 0 on graceful shutdown (SIGINT/SIGTERM), 1 on configuration
// or initial broker connection failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/prusa-mqtt-bridge/internal/bridges/prusa"
	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/config"
	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// configPathEnv selects a different configuration file.
const configPathEnv = "PRUSABRIDGE_CONFIG"

func main() {
	// Cancels on Ctrl+C or SIGTERM. Further signals are absorbed by the
	// context until cancel runs, so a second Ctrl+C cannot cut shutdown short.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context cancelled by the shutdown signal
//
// Returns:
//   - error: nil on clean shutdown, or error describing a fatal startup failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Prusa MQTT bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("configuration failed", "kind", configErrorKind(err), "path", configPath, "error", err)
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	printer := prusa.NewClient(cfg.Printer())

	mqttCfg := cfg.MQTT()
	mqttClient := mqtt.New(mqttCfg)
	mqttClient.SetOnDisconnect(func(err error) {
		log.Error("MQTT connection lost, not reconnecting",
			"kind", prusa.KindBrokerUnreachable,
			"error", err,
		)
	})

	bridge, err := prusa.NewBridge(prusa.BridgeOptions{
		Fetcher:  printer,
		MQTT:     mqttClient,
		Interval: prusa.DefaultPollInterval,
		Logger:   log.With("component", "bridge"),
	})
	if err != nil {
		return fmt.Errorf("creating bridge: %w", err)
	}

	log.Info("connecting to MQTT broker",
		"broker", fmt.Sprintf("%s:%d", mqttCfg.Host, mqttCfg.Port),
		"client_id", mqttClient.ClientID(),
		"topic_prefix", mqttCfg.Topic,
		"printer_url", printer.StatusURL(),
	)

	if err := bridge.Run(ctx); err != nil {
		return fmt.Errorf("running bridge: %w", err)
	}

	log.Info("Prusa MQTT bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses PRUSABRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}
	return defaultConfigPath
}

// configErrorKind names the configuration failure for the log.
func configErrorKind(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigMissing):
		return "ConfigMissing"
	case errors.Is(err, config.ErrConfigInvalid):
		return "ConfigInvalid"
	default:
		return "Unknown"
	}
}
