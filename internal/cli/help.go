package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Matches section headers like "Usage:", "Available Commands:", "Flags:"
	sectionHeaderRe = regexp.MustCompile(`^[A-Z][A-Za-z ]+:$`)
	// Matches command/alias listings: "  commandname   description text"
	commandListingRe = regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`)
	// Matches flag lines: "  -f, --flag-name type   description"
	flagLineRe = regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`)
	// Matches footer lines: "Use "..." for more information"
	footerRe = regexp.MustCompile(`^Use "`)
	// Matches example invocations: "  taxiledger add --revenue 1200000"
	exampleRe = regexp.MustCompile(`^( +)(taxiledger .*)$`)
	// Matches range values and suffixed amounts: "cycle-2026-9", "week-last", "1.2tr", "350k"
	valueRe = regexp.MustCompile(`\b(cycle-\d{4}-\d{1,2}|(week|year)-(this|last)|\d+(\.\d+)?(k|tr|m))\b`)
)

// colorizedHelpFunc returns a custom help function that colorizes Cobra's default help output.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		// Save original writer before replacing
		origOut := cmd.OutOrStdout()

		// Generate default help text
		var buf strings.Builder
		cmd.SetOut(&buf)
		cmd.InitDefaultHelpFlag()
		_ = cmd.Usage()
		cmd.SetOut(origOut)

		raw := buf.String()
		lines := strings.Split(raw, "\n")

		var result strings.Builder
		for _, line := range lines {
			result.WriteString(colorizeLine(line))
			result.WriteString("\n")
		}

		// Remove trailing double newline
		output := strings.TrimRight(result.String(), "\n") + "\n"
		cmd.Print(output)
	}
}

// colorizeLine applies color rules to a single line of help output.
func colorizeLine(line string) string {
	// Section headers
	if sectionHeaderRe.MatchString(strings.TrimSpace(line)) {
		return Info(line)
	}

	// Footer lines
	if footerRe.MatchString(strings.TrimSpace(line)) {
		return Silent(line)
	}

	if m := exampleRe.FindStringSubmatch(line); m != nil {
		return m[1] + withValues(m[2], Primary)
	}

	// Flag lines
	if m := flagLineRe.FindStringSubmatch(line); m != nil {
		return m[1] + Primary(m[2]) + withValues(m[3], Text)
	}

	// Command listings
	if m := commandListingRe.FindStringSubmatch(line); m != nil {
		return m[1] + Primary(m[2]) + Text(m[3])
	}

	return withValues(line, Text)
}

// withValues renders s with base, picking out range values and amounts in Info.
func withValues(s string, base func(string) string) string {
	locs := valueRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return base(s)
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			b.WriteString(base(s[last:loc[0]]))
		}
		b.WriteString(Info(s[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(s) {
		b.WriteString(base(s[last:]))
	}
	return b.String()
}
