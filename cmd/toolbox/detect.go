package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/pkg/detect"
)

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <user-agent>",
		Short: "Describe the device behind a User-Agent string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(detect.Detect(args[0]))
		},
	}
}
