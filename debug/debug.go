// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path error logging helper (zero-alloc)
//
// Purpose:
//   - Logs infrequent failure paths without introducing heap pressure.
//   - Used only in cold paths: OS-call failures, calibration notes,
//     teardown diagnostics.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - String concatenation of small constants stays off the hot path.
//
// ⚠️ Never invoke in hot loops — use only in failure diagnostics.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs an error with a fixed prefix, bypassing fmt entirely.
//
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
	} else {
		utils.PrintWarning(prefix + "\n")
	}
}

// DropMessage logs a cold-path diagnostic: configuration fallbacks,
// run-state transitions, final drain notes.
//
//go:inline
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
