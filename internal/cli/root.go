package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func NewRoot(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "lucent",
		Short: "Lucent replies to tarot card mentions under a channel's latest video",
	}

	root.AddCommand(newRepliesCommand(logger))
	root.AddCommand(newUpdateTitleCommand(logger))
	root.AddCommand(newServeCommand(logger))
	root.AddCommand(newAuthCommand(logger))
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
