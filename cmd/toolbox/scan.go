package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/share"
)

func scanCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <file|->",
		Short: "List the component mount points of an HTML document",
		Long: `Parse an HTML document and list every data-component mount point
with its decoded props and owned refs.

Examples:
  toolbox scan index.html
  curl -s https://example.com | toolbox scan - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := newKit(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			doc, err := dom.Parse(in)
			if err != nil {
				return err
			}
			return printMountPoints(cmd, kit.Scan(doc), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printMountPoints(cmd *cobra.Command, mps []component.MountPoint, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		if mps == nil {
			mps = []component.MountPoint{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(mps)
	}

	if len(mps) == 0 {
		fmt.Fprintln(out, "no mount points")
		return nil
	}
	for _, mp := range mps {
		fmt.Fprintf(out, "%s (%s) on %s\n", mp.Name, mp.Key, mp.Element)
		for _, k := range sortedKeys(mp.Props) {
			v, _ := json.Marshal(mp.Props[k])
			fmt.Fprintf(out, "  prop %s = %s\n", k, v)
		}
		refs := make([]string, 0, len(mp.Refs))
		for name, n := range mp.Refs {
			refs = append(refs, fmt.Sprintf("%s×%d", name, n))
		}
		sort.Strings(refs)
		if len(refs) > 0 {
			fmt.Fprintf(out, "  refs %s\n", strings.Join(refs, ", "))
		}
	}
	return nil
}

func sortedKeys(p component.Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func metaCmd(flags *globalFlags) *cobra.Command {
	var pageURL string

	cmd := &cobra.Command{
		Use:   "meta <file|->",
		Short: "Print the sharing metadata of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			doc, err := dom.Parse(in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(share.RetrieveMetaData(doc, pageURL))
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL used when no og:url tag is present")
	return cmd
}
