package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrwtech/rich-tables/internal/markup"
	"github.com/hrwtech/rich-tables/internal/render"
)

var diffCmd = &cobra.Command{
	Use:   "diff BEFORE AFTER",
	Short: "Render a styled character diff of two values",
	Long:  "Compares two argument strings and prints the merged diff with insertions\nunderlined green and deletions struck through red. Arguments that parse as\nJSON are diffed by their indented form.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before := normalizeDiffArg(args[0])
		after := normalizeDiffArg(args[1])
		out := markup.Render(render.MakeDiff(before, after))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// normalizeDiffArg pretty-prints JSON arguments so structural changes diff
// line by line; anything else is compared verbatim.
func normalizeDiffArg(s string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s
	}
	return string(pretty)
}
