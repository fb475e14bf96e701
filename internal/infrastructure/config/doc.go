// Package config handles loading and validating the bridge configuration.
//
// This package manages:
//   - Loading configuration from a YAML file
//   - Overriding secrets with environment variables
//   - Validation of required keys
//   - Default value handling for optional keys
//
// Required keys are prusa_ip, prusa_api_key, mqtt_broker, mqtt_port and
// mqtt_topic. A missing file yields ErrConfigMissing; anything else wrong
// with the file yields ErrConfigInvalid. Both are fatal at startup.
//
// Security Considerations:
//   - The API key and MQTT password can be supplied via
//     PRUSABRIDGE_PRUSA_API_KEY and PRUSABRIDGE_MQTT_PASSWORD
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.MQTTTopic)
package config
