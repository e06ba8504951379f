package extdec

import "os/exec"

// available checks if a binary is on the system PATH.
func available(name string) (string, bool) {
	path, err := exec.LookPath(name)

	return path, err == nil
}
