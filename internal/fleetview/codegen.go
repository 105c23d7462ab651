package fleetview

import (
	"fmt"
	"strconv"
	"strings"
)

// NextCode derives the next sequential human-readable code (employee IDs,
// job IDs) from the highest numeric suffix already in use. Entries that do
// not match prefix+digits are ignored. With no valid codes the sequence
// starts at 1, zero-padded to width.
//
// This is a suggestion, not a reservation: two clients creating at the
// same moment can race to the same suffix.
func NextCode(existing []string, prefix string, width int) string {
	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, max+1)
}
