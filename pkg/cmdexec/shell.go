package cmdexec

// getDefaultShell is the fallback when SHELL is unset.
func getDefaultShell() (shell string, args []string) {
	return "sh", []string{"-c"}
}
