package tests_test

import (
	"fmt"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectErrorContains returns a comparator verifying stderr contains a substring.
func expectErrorContains(substr string) test.Comparator {
	return func(stderr string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stderr, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in stderr:\n%s", substr, stderr))
			testing.Fail()
		}
	}
}
