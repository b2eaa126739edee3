package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// handRule is the JSON form of one rule table entry.
type handRule struct {
	Hand  rps.Hand   `json:"hand"`
	Key   string     `json:"key"`
	Beats []rps.Hand `json:"beats"`
	Loses []rps.Hand `json:"loses"`
	Verb  string     `json:"verb,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rules",
		Short:         "Print the rule table and key bindings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, cmd)
		},
	}
}

func runRules(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	rules, err := rps.DefaultRules()
	if err != nil {
		_ = formatter.Error(ErrCodeRules, "failed to load rules", err.Error())
		return WrapExitError(ExitFailure, "failed to load rules", err)
	}

	if formatter.IsJSON() {
		table := make([]handRule, 0, len(rules.Hands()))
		for _, h := range rules.Hands() {
			obj, _ := rules.Object(h)
			table = append(table, handRule{Hand: h, Key: player.MenuKey(h), Beats: obj.Beats, Loses: obj.Loses, Verb: obj.Verb})
		}
		return formatter.Success(table)
	}

	for _, line := range ruleLines(rules) {
		formatter.Textf("%s", line)
	}
	formatter.Textf("Keys: %s", menuLine(rules))
	formatter.Textf("Commands: Reset [R], Stats [S], Quit [Q] or [C]")
	return nil
}
