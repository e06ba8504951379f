package tests_test

import (
	"errors"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"

	"github.com/farcloser/dr/tests/testutils"
)

// TestConfigurationErrors covers the CLI's flag-validation contract
// (spec §6/§7), none of which needs a real audio fixture: every
// rejection happens before the path argument is ever touched.
func TestConfigurationErrors(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "--bulk and --tui are mutually exclusive",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("--bulk", "--tui", ".")
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeGenericFail,
					Errors:   []error{errors.New("--bulk and --tui cannot be used together")},
				}
			},
		},
		{
			Description: "--bulk requires --json or --txt",
			Command: func(_ test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("--bulk", ".")
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeGenericFail,
					Errors:   []error{errors.New("--bulk requires at least one output format")},
				}
			},
		},
	}

	testCase.Run(t)
}

// TestSingleFileAnalysis exercises the real decode-through-reduce path
// on a genuine fixture, asserting the stable table output (§6).
func TestSingleFileAnalysis(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "a genuine file prints its official DR value",
			Setup: func(data test.Data, helpers test.Helpers) {
				data.Labels().Set("file", agar.Genuine16bit44k(data, helpers))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command(data.Labels().Get("file"))
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains("Official DR value: DR"),
				}
			},
		},
	}

	testCase.Run(t)
}
