package mqtt

import "strings"

// statusSuffix is the availability topic suffix. It is not one of the
// per-cycle telemetry topics.
const statusSuffix = "status"

// Topics builds full topic names from the configured prefix.
//
//	topics := mqtt.NewTopics("printer/mk4")
//	topics.Field("bed") // "printer/mk4/bed"
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Trailing slashes are trimmed.
func NewTopics(prefix string) Topics {
	return Topics{prefix: strings.TrimRight(prefix, "/")}
}

// Prefix returns the configured prefix.
func (t Topics) Prefix() string {
	return t.prefix
}

// Field returns {prefix}/{suffix}.
func (t Topics) Field(suffix string) string {
	return t.prefix + "/" + suffix
}

// Status returns the retained availability topic, {prefix}/status.
func (t Topics) Status() string {
	return t.Field(statusSuffix)
}

// validateSuffix rejects suffixes that would not form a single concrete
// topic level: empty strings and MQTT wildcards.
func validateSuffix(suffix string) error {
	if suffix == "" || strings.ContainsAny(suffix, "+#") {
		return ErrInvalidTopic
	}
	return nil
}
