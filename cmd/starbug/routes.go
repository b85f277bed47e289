package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/starbugmolt/starbug/pkg/site"
)

func routesCmd() *cobra.Command {
	var contentDir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table and check links",
		Long: `Print every route in the site tree.

Building the tree renders each page once and fails if a page or the nav
bar links to a path that does not resolve.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := site.LoadContent(contentDir)
			if err != nil {
				return err
			}
			st, err := site.New(content, site.Options{})
			if err != nil {
				errorMsg("Route tree is invalid")
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tNAME\tTITLE")
			for _, r := range st.Router.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.Name, st.Meta(&r).Title)
			}
			tw.Flush()
			fmt.Println()
			success("%d routes, %d links checked", st.Router.Len(), len(st.Links()))
			return nil
		},
	}

	cmd.Flags().StringVar(&contentDir, "content", "", "Directory holding about.md")

	return cmd
}
