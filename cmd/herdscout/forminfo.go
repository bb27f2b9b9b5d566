package main

import (
	"context"
	"fmt"

	"github.com/herdscout/herdscout/export"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the registry's current member-location dropdown options",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			opts, err := s.Locations(ctx)
			if err != nil {
				return err
			}

			table := models.NewTable("value", "label")
			for _, o := range opts {
				table.Append(models.Row{"value": o.Value, "label": o.Label})
			}
			fmt.Println(export.RenderTable(table))
			fmt.Printf("%d location(s)\n", table.Len())
			return nil
		})
	},
}

var formInfoCmd = &cobra.Command{
	Use:       "form-info [ranch|animal|epd]",
	Short:     "Show the live structure of one of the search forms",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ranch", "animal", "epd"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := form.ParseKind(args[0])
		if err != nil {
			return err
		}

		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			schema, err := s.FormInfo(ctx, kind)
			if err != nil {
				return err
			}

			table := models.NewTable("field", "type", "options")
			for _, key := range schema.Order {
				f := schema.Fields[key]
				table.Append(models.Row{
					"field":   key,
					"type":    f.Type,
					"options": fmt.Sprintf("%d", len(f.Options)),
				})
			}
			fmt.Println(export.RenderTable(table))

			if schema.Submit.FuncName != "" {
				fmt.Printf("submit: %s()\n", schema.Submit.FuncName)
			} else if schema.Submit.ButtonLabel != "" {
				fmt.Printf("submit: button %q\n", schema.Submit.ButtonLabel)
			}
			if missing := schema.Missing(); len(missing) > 0 {
				fmt.Printf("missing expected fields: %v\n", missing)
			}
			fmt.Printf("fingerprint: %016x\n", schema.Fingerprint)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(formInfoCmd)
}
