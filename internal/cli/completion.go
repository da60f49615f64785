package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/period"
	"github.com/spf13/cobra"
)

var validShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = newCompletionCmd()

func newCompletionCmd() *cobra.Command {
	cmd := LeafCommand{
		Use:   "completion [shell]",
		Short: "Print a shell completion script",
		Example: "  eval \"$(taxiledger completion bash)\"\n" +
			"  taxiledger completion fish | source",
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			} else {
				shell = detectShell()
				if shell == "" {
					return fmt.Errorf("could not detect shell from $SHELL; pass one of %s", strings.Join(validShells, ", "))
				}
			}
			return runCompletion(cmd, shell)
		},
	}.Build()
	cmd.ValidArgs = validShells
	return cmd
}

func runCompletion(cmd *cobra.Command, shell string) error {
	root := cmd.Root()
	out := cmd.OutOrStdout()

	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (valid: %s)", shell, strings.Join(validShells, ", "))
	}
}

func detectShell() string {
	switch base := filepath.Base(os.Getenv("SHELL")); base {
	case "bash", "zsh", "fish":
		return base
	}
	return ""
}

// registerCompletions wires dynamic completion for ledger codes. Range
// values are completed by LeafCommand.Build.
func registerCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("ledger", completeLedgerCodes)
	leaveCmd.ValidArgsFunction = completeLedgerCodes
}

func completeLedgerCodes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ledgerCodeCompletions(dataDir, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func ledgerCodeCompletions(dataDir, prefix string) []string {
	reg, err := ledger.ReadRegistry(dataDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range reg.Ledgers {
		if strings.HasPrefix(e.ID, prefix) {
			out = append(out, e.ID+"\t"+e.Code)
		}
	}
	return out
}

func completeRanges(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return rangeCompletions(dataDir, toComplete, time.Now()), cobra.ShellCompDirectiveNoFileComp
}

func rangeCompletions(dataDir, prefix string, now time.Time) []string {
	loc := time.Local
	if settings, err := ledger.LoadSettings(dataDir); err == nil {
		if l, err := settings.Location(); err == nil {
			loc = l
		}
	}
	var out []string
	for _, r := range period.Flatten(period.GenerateTimeOptions(now.In(loc))) {
		if strings.HasPrefix(r.Value, prefix) {
			out = append(out, r.Value+"\t"+r.Label)
		}
	}
	return out
}
