// Package deps reports the availability of the external binaries a rating
// run relies on, so misconfiguration surfaces before any wine is rated.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency cellar relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForRun returns the requirements of a rating run: the reasoning CLI when
// that backend is selected, and git when publishing is enabled.
func ForRun(cliBackend bool, cliBinary string, publishEnabled bool) []Requirement {
	var reqs []Requirement
	if cliBackend {
		reqs = append(reqs, Requirement{
			Name:        "Reasoning CLI",
			Command:     cliBinary,
			Description: "invoked once per wine to produce ratings",
		})
	}
	if publishEnabled {
		reqs = append(reqs, Requirement{
			Name:        "git",
			Command:     "git",
			Description: "publishes rated listings to the remote",
			Optional:    true,
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// FirstMissing returns the first required dependency that is unavailable,
// or nil when every required binary resolves.
func FirstMissing(statuses []Status) *Status {
	for i := range statuses {
		if !statuses[i].Available && !statuses[i].Optional {
			return &statuses[i]
		}
	}
	return nil
}
