package prusa

import (
	"encoding/json"
	"fmt"
)

// Snapshot is one poll cycle's telemetry.
//
// Pointer fields are nil when the key was absent from the response, so a
// missing value is never confused with zero. Progress defaults to 0 when
// the job object or its progress key is absent (the printer is idle).
type Snapshot struct {
	BedTemperature    *float64
	NozzleTemperature *float64
	State             *string
	Progress          float64
}

// statusResponse mirrors the PrusaLink /api/v1/status document.
// Only the fields the bridge republishes are decoded.
type statusResponse struct {
	Printer *printerStatus `json:"printer"`
	Job     *jobStatus     `json:"job"`
}

type printerStatus struct {
	TempBed    *float64 `json:"temp_bed"`
	TempNozzle *float64 `json:"temp_nozzle"`
	State      *string  `json:"state"`
}

type jobStatus struct {
	Progress *float64 `json:"progress"`
}

// parseStatus decodes a status body into a Snapshot.
//
// printer.temp_bed, printer.temp_nozzle and printer.state are required;
// job and job.progress are optional.
func parseStatus(body []byte) (Snapshot, error) {
	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if resp.Printer == nil {
		return Snapshot{}, missing("printer")
	}
	if resp.Printer.TempBed == nil {
		return Snapshot{}, missing("printer.temp_bed")
	}
	if resp.Printer.TempNozzle == nil {
		return Snapshot{}, missing("printer.temp_nozzle")
	}
	if resp.Printer.State == nil {
		return Snapshot{}, missing("printer.state")
	}

	snap := Snapshot{
		BedTemperature:    resp.Printer.TempBed,
		NozzleTemperature: resp.Printer.TempNozzle,
		State:             resp.Printer.State,
	}
	if resp.Job != nil && resp.Job.Progress != nil {
		snap.Progress = *resp.Job.Progress
	}

	return snap, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %w: %s", ErrMalformedResponse, ErrMissingField, field)
}
