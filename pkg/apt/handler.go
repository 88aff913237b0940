package apt

import (
	"os"
	"strings"
)

// PackageHandler carries the per-invocation bookkeeping for one command:
// locally supplied .deb files, names that turned out not to exist, and
// packages protected from the current transaction.
type PackageHandler struct {
	LocalDebs []string
	NotFound  []string
	Protected map[string]struct{}
}

// NewPackageHandler returns an empty handler.
func NewPackageHandler() *PackageHandler {
	return &PackageHandler{Protected: make(map[string]struct{})}
}

// SplitLocal separates local .deb paths from package names. Arguments that
// look like .deb files but do not exist are recorded as not found.
func (h *PackageHandler) SplitLocal(args []string) []string {
	var names []string
	for _, arg := range args {
		if !strings.HasSuffix(arg, ".deb") {
			names = append(names, arg)
			continue
		}
		if _, err := os.Stat(arg); err != nil {
			h.NotFound = append(h.NotFound, arg)
			continue
		}
		h.LocalDebs = append(h.LocalDebs, arg)
	}
	return names
}

// Protect adds names to the protected set.
func (h *PackageHandler) Protect(names ...string) {
	for _, n := range names {
		h.Protected[baseName(n)] = struct{}{}
	}
}

// IsProtected reports whether a name is protected.
func (h *PackageHandler) IsProtected(name string) bool {
	_, ok := h.Protected[baseName(name)]
	return ok
}

// ProtectedNames returns the protected set as a sorted-ish slice.
func (h *PackageHandler) ProtectedNames() []string {
	names := make([]string, 0, len(h.Protected))
	for n := range h.Protected {
		names = append(names, n)
	}
	return names
}
