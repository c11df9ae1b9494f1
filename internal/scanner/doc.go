// Package scanner discovers GazModem devices and recovers their
// parameter tables.
//
// A scan has two phases. First the scanner passively sniffs the bus for
// a fixed window, collecting every device address that appears in live
// traffic. Then it actively probes each discovered device (or a
// fallback pair when the bus was silent) across a parameter index
// range, decoding every response into a named, typed record.
//
// Probing uses an empty-streak heuristic: parameter tables are dense at
// the front of the index space, so a long unbroken run of empty indices
// marks the end of a device's populated region and the remainder is
// skipped.
//
// The scan runs on one worker goroutine and reports through two
// buffered channels, one for status/progress and one for decoded
// records; both close when the scan ends. Cancellation is cooperative
// via Stop.
package scanner
