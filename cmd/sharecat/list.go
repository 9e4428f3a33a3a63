package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [share[.schema]]",
		Short: "List shares, the schemas of a share, or the tables of a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			_, catalog, err := newSharingClient(log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 0 {
				shares, err := catalog.ListShares(ctx)
				if err != nil {
					return err
				}
				for _, share := range shares {
					fmt.Println(share.Name)
				}
				return nil
			}

			parts := strings.SplitN(args[0], ".", 2)
			if len(parts) == 1 {
				schemas, err := catalog.ListSchemas(ctx, parts[0])
				if err != nil {
					return err
				}
				for _, schema := range schemas {
					fmt.Printf("%s.%s\n", schema.Share, schema.Name)
				}
				return nil
			}

			tables, err := catalog.ListTables(ctx, parts[0], parts[1])
			if err != nil {
				return err
			}
			for _, tbl := range tables {
				fmt.Printf("%s.%s.%s\n", tbl.Share, tbl.Schema, tbl.Name)
			}
			return nil
		},
	}
}
