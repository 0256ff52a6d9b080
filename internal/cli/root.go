package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seismo",
		Short:         "Per-floor seismic drift check",
		Long:          "Seismo computes the lateral drift of every floor from its stiffness and seismic force and checks it against the drift limit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newEvaluateCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("seismo %s (%s)\n", version, commit)
		},
	}
}

func Execute() error {
	return newRootCmd().Execute()
}
