// Package toolcheck verifies that the analysis tool installed on the host
// matches the version a descriptor pins.
package toolcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
	"github.com/open-edge-platform/pinwrap/internal/utils/shell"
)

// versionPattern pulls the first release-looking token out of a tool's
// --version output, which tools print in wildly different shapes.
var versionPattern = regexp.MustCompile(`\d+(\.\d+)+([0-9A-Za-z.+-]*)`)

// InstalledVersion runs `<tool> --version` on the host and extracts the
// reported version.
func InstalledVersion(tool string) (string, error) {
	if !shell.IsCommandExist(tool) {
		return "", fmt.Errorf("%s is not installed on this host", tool)
	}

	output, err := shell.ExecCmd(tool+" --version", nil)
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", tool, err)
	}

	version := versionPattern.FindString(output)
	if version == "" {
		return "", fmt.Errorf("could not find a version in %s --version output: %q",
			tool, strings.TrimSpace(output))
	}
	return version, nil
}

// Check compares the installed version of the record's pinned tool against
// the pin.
func Check(rec *descriptor.Record) error {
	log := logger.Logger()

	pin, err := rec.Pin()
	if err != nil {
		return err
	}

	installed, err := InstalledVersion(pin.Name)
	if err != nil {
		return err
	}

	if installed != pin.Version {
		return fmt.Errorf("installed %s version %s does not match pin %s",
			pin.Name, installed, pin.Version)
	}

	log.Infof("installed %s %s matches the descriptor pin", pin.Name, installed)
	return nil
}
