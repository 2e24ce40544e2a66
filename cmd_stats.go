package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
)

func (c *cli) statsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats USER",
		Short: "Fetch and print a GitHub user's statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := c.source(c.logger)
			rec, err := src.Fetch(cmd.Context(), args[0])
			st := src.Status()
			c.logger.Debug("source status",
				"source", st.Name,
				"healthy", st.Healthy,
				"latency", st.LastLatency)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, string(data))
				return nil
			}
			for _, k := range stats.Kinds() {
				fmt.Fprintln(c.out, stats.Text(k, &rec))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
