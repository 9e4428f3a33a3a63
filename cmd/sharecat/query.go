package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vegasq/sharecat/client"
	"github.com/vegasq/sharecat/engine"
	"github.com/vegasq/sharecat/output"
)

func newQueryCommand() *cobra.Command {
	var (
		filters []string
		columns []string
		limit   int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "query <share.schema.table>",
		Short: "Fetch a table, filter it, and print the rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runQuery(cmd, args[0], filters, columns, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%d/%d files contributed rows\n", result.FilesProcessed, result.TotalFiles)
			return output.New(format, os.Stdout).Format(result.Table)
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "predicate, e.g. \"status = 'active'\" (repeatable)")
	cmd.Flags().StringSliceVar(&columns, "column", nil, "columns to keep")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to return (0 = unlimited)")
	cmd.Flags().StringVar(&format, "format", "jsonl", "output format: jsonl, csv, table")
	return cmd
}

func newSearchCommand() *cobra.Command {
	var (
		text    string
		columns []string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "search <share.schema.table>",
		Short: "Fetch a table and keep rows containing a text fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runQuery(cmd, args[0], nil, nil, 0)
			if err != nil {
				return err
			}
			found, err := result.Search(text, columns)
			if err != nil {
				return err
			}
			return output.New(format, os.Stdout).Format(found.Table)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to search for")
	cmd.Flags().StringSliceVar(&columns, "in", nil, "columns to search in")
	cmd.Flags().StringVar(&format, "format", "jsonl", "output format: jsonl, csv, table")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newAggregateCommand() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "aggregate <share.schema.table>",
		Short: "Fetch a table and count rows per distinct value of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runQuery(cmd, args[0], nil, nil, 0)
			if err != nil {
				return err
			}
			groups, err := result.AggregateBy(column)
			if err != nil {
				return err
			}
			for _, group := range groups {
				value := group.Value
				if value == nil {
					value = "<null>"
				}
				fmt.Printf("%v\t%d\n", value, group.Count)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "by", "", "column to group by")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

// runQuery wires the client and executes one table query.
func runQuery(cmd *cobra.Command, refArg string, filters, columns []string, limit int) (*engine.QueryResult, error) {
	ref, err := parseTableRef(refArg)
	if err != nil {
		return nil, err
	}

	log := newLogger()
	sharing, _, err := newSharingClient(log)
	if err != nil {
		return nil, err
	}

	return sharing.ExecuteQuery(cmd.Context(), ref, client.QueryOptions{
		Columns: columns,
		Filters: filters,
		Limit:   limit,
	})
}
