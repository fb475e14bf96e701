package prusa

import "strconv"

// Topic suffixes appended to the configured prefix.
const (
	SuffixBed      = "bed"
	SuffixTool     = "tool"
	SuffixState    = "state"
	SuffixPrinting = "printing"
)

// Field is one value ready to publish.
// Present is false when the snapshot had no value for it.
type Field struct {
	Suffix  string
	Payload []byte
	Present bool
}

// Fields returns the four telemetry fields in publish order:
// bed, tool, state, printing. Identical snapshots yield identical payloads.
func (s Snapshot) Fields() []Field {
	return []Field{
		floatField(SuffixBed, s.BedTemperature),
		floatField(SuffixTool, s.NozzleTemperature),
		stringField(SuffixState, s.State),
		{Suffix: SuffixPrinting, Payload: []byte(formatNumber(s.Progress)), Present: true},
	}
}

func floatField(suffix string, v *float64) Field {
	if v == nil {
		return Field{Suffix: suffix}
	}
	return Field{Suffix: suffix, Payload: []byte(formatNumber(*v)), Present: true}
}

func stringField(suffix string, v *string) Field {
	if v == nil {
		return Field{Suffix: suffix}
	}
	return Field{Suffix: suffix, Payload: []byte(*v), Present: true}
}

// formatNumber renders v in its shortest exact decimal form with no
// exponent and no unit: 60 -> "60", 215.3 -> "215.3".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
