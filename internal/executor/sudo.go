package executor

// IsRoot reports whether the current process runs as root/administrator.
func IsRoot() bool {
	return isRoot()
}

// HasSudo reports whether a sudo-like elevation tool is on the path.
func HasSudo() bool {
	return hasSudo()
}

// CanElevate reports whether elevated invocations can succeed at all.
func CanElevate() bool {
	return isRoot() || hasSudo()
}

type errNoPrivileges struct{}

func (errNoPrivileges) Error() string {
	return "operation requires root privileges, but neither root nor sudo is available"
}

// ErrNoPrivileges is returned when an invocation asks for elevation that the
// host cannot provide.
var ErrNoPrivileges = errNoPrivileges{}
