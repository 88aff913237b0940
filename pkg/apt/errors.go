package apt

import (
	"fmt"
	"regexp"
	"strings"
)

// NotFoundError reports names the engine has never heard of.
type NotFoundError struct {
	Names []string
}

func (e *NotFoundError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unable to find package %q", e.Names[0])
	}
	return fmt.Sprintf("unable to find packages: %s", strings.Join(e.Names, ", "))
}

// NoCandidateError reports a known name the engine cannot select a version
// for. This covers virtual packages and packages referred to only by
// other packages.
type NoCandidateError struct {
	Name string
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("package %q has no installation candidate", e.Name)
}

// BrokenPackage is one package the solver could not satisfy, with the
// engine's own description of what is unmet.
type BrokenPackage struct {
	Name  string
	Unmet []string
}

// BrokenError reports a transaction the solver rejected because of unmet
// dependencies or conflicts.
type BrokenError struct {
	Packages []BrokenPackage
	Held     bool // the engine blamed held packages
	Raw      string
}

func (e *BrokenError) Error() string {
	if e.Held {
		return "you have held broken packages"
	}
	if len(e.Packages) > 0 {
		names := make([]string, len(e.Packages))
		for i, p := range e.Packages {
			names[i] = p.Name
		}
		return fmt.Sprintf("unmet dependencies for: %s", strings.Join(names, ", "))
	}
	return "the engine was unable to resolve the transaction"
}

// AmbiguousVirtualError reports a virtual name satisfied by more than one
// concrete package, which the caller must disambiguate.
type AmbiguousVirtualError struct {
	Name      string
	Providers []string
}

func (e *AmbiguousVirtualError) Error() string {
	return fmt.Sprintf("%q is a virtual package provided by: %s",
		e.Name, strings.Join(e.Providers, ", "))
}

// Markers in apt-get output that classify a failed run.
var (
	unableToLocateRe = regexp.MustCompile(`E: Unable to locate package (\S+)`)
	noCandidateRe    = regexp.MustCompile(`E: Package '([^']+)' has no installation candidate`)
	unmetHeaderRe    = regexp.MustCompile(`The following packages have unmet dependencies:`)
	heldBrokenRe     = regexp.MustCompile(`held broken packages`)
	// " foo : Depends: libbar (>= 2) but it is not going to be installed"
	unmetDetailRe = regexp.MustCompile(`^\s*(\S+)\s*:\s*(Depends|PreDepends|Conflicts|Breaks|Recommends):\s*(.+)$`)
	// "          Depends: libbaz but it is not installable" (same package,
	// name omitted on continuation lines)
	unmetContinuationRe = regexp.MustCompile(`^\s+(Depends|PreDepends|Conflicts|Breaks|Recommends):\s*(.+)$`)
	lastErrorRe         = regexp.MustCompile(`(?m)^E: (.+)$`)
)

// classifyEngineError turns raw apt-get output from a failed run into one
// of the typed errors above. The raw run error is wrapped when nothing in
// the output is recognized.
func classifyEngineError(output string, runErr error) error {
	if m := unableToLocateRe.FindAllStringSubmatch(output, -1); len(m) > 0 {
		nf := &NotFoundError{}
		for _, match := range m {
			nf.Names = append(nf.Names, match[1])
		}
		return nf
	}

	if m := noCandidateRe.FindStringSubmatch(output); m != nil {
		return &NoCandidateError{Name: m[1]}
	}

	if unmetHeaderRe.MatchString(output) || heldBrokenRe.MatchString(output) {
		return parseBrokenError(output)
	}

	if m := lastErrorRe.FindStringSubmatch(output); m != nil {
		return fmt.Errorf("engine error: %s", m[1])
	}
	if runErr != nil {
		return fmt.Errorf("engine call failed: %w", runErr)
	}
	return fmt.Errorf("engine call failed")
}

// parseBrokenError extracts the per-package unmet detail lines from the
// "unmet dependencies" block.
func parseBrokenError(output string) *BrokenError {
	be := &BrokenError{
		Raw:  output,
		Held: heldBrokenRe.MatchString(output),
	}

	byName := map[string]int{}
	inBlock := false
	last := -1
	for _, line := range strings.Split(output, "\n") {
		if unmetHeaderRe.MatchString(line) {
			inBlock = true
			last = -1
			continue
		}
		if !inBlock {
			continue
		}

		if m := unmetDetailRe.FindStringSubmatch(line); m != nil {
			name, detail := m[1], m[2]+": "+strings.TrimSpace(m[3])
			if idx, ok := byName[name]; ok {
				be.Packages[idx].Unmet = append(be.Packages[idx].Unmet, detail)
				last = idx
				continue
			}
			byName[name] = len(be.Packages)
			last = len(be.Packages)
			be.Packages = append(be.Packages, BrokenPackage{Name: name, Unmet: []string{detail}})
			continue
		}

		// Further constraints for the same package carry no name, just a
		// deeper-indented keyword.
		if m := unmetContinuationRe.FindStringSubmatch(line); m != nil && last >= 0 {
			be.Packages[last].Unmet = append(be.Packages[last].Unmet,
				m[1]+": "+strings.TrimSpace(m[2]))
			continue
		}

		if strings.HasPrefix(line, "E:") || strings.TrimSpace(line) == "" {
			inBlock = false
			last = -1
		}
	}

	return be
}
