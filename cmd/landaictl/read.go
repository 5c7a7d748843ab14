package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/landaireal/landai-rent/internal/domain"
)

func listCmd() *cobra.Command {
	var (
		base     string
		f        domain.PropertyFilter
		featured bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print listings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("featured") {
				f.Featured = &featured
			}
			c, err := newClient(base, 5, "")
			if err != nil {
				return err
			}
			out, err := c.ListProperties(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	cmd.Flags().StringVar(&base, "base-url", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&f.Q, "q", "", "free-text search")
	cmd.Flags().StringVar(&f.Type, "type", "", "sale or rent")
	cmd.Flags().StringVar(&f.Category, "category", "", "apartment, villa, land or commercial")
	cmd.Flags().StringVar(&f.Location, "location", "", "location (case-insensitive exact match)")
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured (or, with =false, only non-featured)")
	return cmd
}

func getCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one listing as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be an integer: %w", err)
			}
			c, err := newClient(base, 5, "")
			if err != nil {
				return err
			}
			p, ok, err := c.GetProperty(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("property %d not found", id)
			}
			return printJSON(p)
		},
	}
	cmd.Flags().StringVar(&base, "base-url", "http://localhost:8080", "API base URL")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
