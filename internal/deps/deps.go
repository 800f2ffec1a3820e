package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external helper binary zhbatch can use. When
// Alternatives is set, any one of them satisfies the requirement.
type Requirement struct {
	Name         string
	Command      string
	Alternatives []string
	Description  string
	Optional     bool
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

// ClipboardHelpers lists the programs the clipboard integration shells out to
// on Linux, in the order they are tried.
func ClipboardHelpers() Requirement {
	return Requirement{
		Name:         "Clipboard helper",
		Alternatives: []string{"wl-copy", "xclip", "xsel", "termux-clipboard-set"},
		Description:  "Needed by `zhbatch text --clipboard`",
		Optional:     true,
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	candidates := req.Alternatives
	if cmd := strings.TrimSpace(req.Command); cmd != "" {
		candidates = append([]string{cmd}, candidates...)
	}
	status := Status{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if len(candidates) == 0 {
		status.Detail = "command not configured"
		return status
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate); err == nil {
			status.Command = candidate
			status.Available = true
			return status
		}
	}
	status.Command = strings.Join(candidates, ", ")
	if len(candidates) == 1 {
		status.Detail = fmt.Sprintf("binary %q not found", candidates[0])
	} else {
		status.Detail = fmt.Sprintf("none of %s found", status.Command)
	}
	return status
}
