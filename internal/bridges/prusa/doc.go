// Package prusa implements the PrusaLink-to-MQTT telemetry bridge.
//
// # Architecture
//
// The bridge is a single poll loop between two endpoints:
//
//	┌─────────────────┐   HTTP GET    ┌─────────────────┐   MQTT QoS 0   ┌────────┐
//	│ PrusaLink API   │◄──────────────│  Bridge         │───────────────►│ Broker │
//	│ /api/v1/status  │   every 3s    │  (this pkg)     │                └────────┘
//	└─────────────────┘               └─────────────────┘
//
// Every cycle fetches one status document, extracts four values and
// publishes each to its own topic:
//
//	{prefix}/bed       printer.temp_bed
//	{prefix}/tool      printer.temp_nozzle
//	{prefix}/state     printer.state
//	{prefix}/printing  job.progress (0 when no job)
//
// # Failure Handling
//
//   - Broker unreachable at startup: Run returns an error.
//   - Printer unreachable or malformed response: logged, cycle skipped.
//   - Publish failure: logged, remaining fields still published.
//   - Broker lost mid-run: not reconnected; publishes fail and are logged.
//
// # Shutdown
//
// Cancelling the context passed to Run (or calling Shutdown) stops new
// cycles. A cycle in progress completes, then the MQTT session is closed.
//
// # Thread Safety
//
// All exported types are safe for concurrent use from multiple goroutines.
package prusa
