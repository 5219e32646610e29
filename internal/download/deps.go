package download

import (
	"fmt"
	"os/exec"
	"strings"
)

// CheckDependencies verifies that the external binaries are present on
// PATH before any network work starts.
func CheckDependencies(binaries ...string) error {
	var missing []string
	for _, bin := range binaries {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("could not find dependencies: %s", strings.Join(missing, ", "))
	}
	return nil
}
