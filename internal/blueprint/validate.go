package blueprint

import (
	"fmt"
	"strings"
)

// CheckRequired reports section names that are expected for a document type
// but missing from the blueprint (case-insensitive substring match).
// Advisory only: callers log the result rather than failing the request.
func CheckRequired(bp *Blueprint, required []string) error {
	var missing []string
	for _, want := range required {
		found := false
		for _, s := range bp.Sections {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("blueprint missing expected sections: %s", strings.Join(missing, ", "))
	}
	return nil
}
