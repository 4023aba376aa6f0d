package confirm

import "fmt"

// ParseMode maps a configuration string to a Mode. Accepts the same names
// Mode.String produces.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "interactive":
		return Interactive, nil
	case "auto-execute", "auto":
		return AutoExecute, nil
	case "dry-run":
		return DryRun, nil
	}
	return Interactive, fmt.Errorf("unknown confirmation mode %q", s)
}

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "reinterpret":
		return PolicyReinterpret, nil
	case "reprompt":
		return PolicyReprompt, nil
	}
	return PolicyReinterpret, fmt.Errorf("unknown confirmation policy %q", s)
}
