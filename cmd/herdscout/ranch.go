package main

import (
	"context"

	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var ranchFilter models.RanchFilter

var ranchCmd = &cobra.Command{
	Use:   "ranch",
	Short: "Search ranch/member records",
	Example: `  herdscout ranch --name SMITH --location TX
  herdscout ranch --prefix "ABC*" --city AMARILLO --export csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchRanch(ctx, ranchFilter)
			if err != nil {
				return err
			}
			return output(result, form.KindRanch)
		})
	},
}

func init() {
	ranchCmd.Flags().StringVar(&ranchFilter.Name, "name", "", "ranch or member name (asterisk wildcards allowed)")
	ranchCmd.Flags().StringVar(&ranchFilter.City, "city", "", "city")
	ranchCmd.Flags().StringVar(&ranchFilter.Prefix, "prefix", "", "herd prefix")
	ranchCmd.Flags().StringVar(&ranchFilter.MemberID, "member_id", "", "member id")
	ranchCmd.Flags().StringVar(&ranchFilter.Location, "location", "", `location: state name, code or "Country|ST"`)
	rootCmd.AddCommand(ranchCmd)
}
