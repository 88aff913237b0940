package executor

// IsRoot reports whether the process is already running as root.
func IsRoot() bool {
	return isRoot()
}

// CanElevate reports whether the process can obtain root privileges.
func CanElevate() bool {
	return isRoot() || hasSudo()
}

// CheckPrivileges returns ErrNoPrivileges when elevation is needed but
// unavailable.
func CheckPrivileges(needsRoot bool) error {
	if needsRoot && !CanElevate() {
		return ErrNoPrivileges
	}
	return nil
}

type errNoPrivileges struct{}

func (errNoPrivileges) Error() string {
	return "this operation requires root privileges, but neither running as root nor sudo is available"
}

// ErrNoPrivileges is returned when an operation needs root but the process
// cannot elevate.
var ErrNoPrivileges = errNoPrivileges{}
