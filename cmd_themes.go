package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

func (c *cli) themesCmd() *cobra.Command {
	var asTOML bool
	cmd := &cobra.Command{
		Use:   "themes [NAME...]",
		Short: "List themes or dump their palettes as TOML",
		Long: `Themes lists the built-in themes. With --toml it prints each palette in the
format accepted by [theme] file, ready to copy and edit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := theme.Names()
			if len(args) > 0 {
				names = names[:0:0]
				for _, a := range args {
					n, err := theme.ParseName(a)
					if err != nil {
						return err
					}
					names = append(names, n)
				}
			}

			for i, n := range names {
				t := theme.Get(n)
				if !asTOML {
					fmt.Fprintf(c.out, "%-14s %s\n", t.Name, t.Label)
					continue
				}
				data, err := theme.SaveToTOML(t)
				if err != nil {
					return fmt.Errorf("theme %s: %w", n, err)
				}
				if i > 0 {
					fmt.Fprintln(c.out)
				}
				fmt.Fprint(c.out, string(data))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print palettes as TOML")
	return cmd
}
