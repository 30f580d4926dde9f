package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/pkg/querystring"
	"github.com/vango-dev/toolbox/pkg/share"
)

func shareCmd(flags *globalFlags) *cobra.Command {
	var (
		d      share.Data
		params []string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a social share link",
		Long: `Print the share link for a target.

Targets: ` + strings.Join(share.Targets(), ", ") + `

Examples:
  toolbox share --target twitter --url https://example.com --description "Read this"
  toolbox share --base-url https://example.com/share --param via=newsletter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := newKit(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, p := range params {
				key, value, _ := strings.Cut(p, "=")
				d.Extra = append(d.Extra, querystring.Entry{Key: key, Value: value})
			}
			url, err := kit.ShareManager().GenerateURL(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&d.Target, "target", "t", "", "Share target (default: custom)")
	cmd.Flags().StringVar(&d.URL, "url", "", "URL to share")
	cmd.Flags().StringVar(&d.Title, "title", "", "Title")
	cmd.Flags().StringVar(&d.Description, "description", "", "Description")
	cmd.Flags().StringVar(&d.BaseURL, "base-url", "", "Base URL for custom links")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Extra key=value query parameter for custom links")
	return cmd
}
