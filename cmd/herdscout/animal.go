package main

import (
	"context"

	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var animalFilter models.AnimalFilter

var animalCmd = &cobra.Command{
	Use:   "animal",
	Short: "Search animal records by registration, tattoo, name or EID",
	Example: `  herdscout animal --value 4123456
  herdscout animal --field name --value "MAPLE*" --sex bulls`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchAnimal(ctx, animalFilter)
			if err != nil {
				return err
			}
			return output(result, form.KindAnimal)
		})
	},
}

func init() {
	animalCmd.Flags().StringVar(&animalFilter.Sex, "sex", "", "bulls, cows or both (default both)")
	animalCmd.Flags().StringVar(&animalFilter.Field, "field", "registration", "search field: registration, tattoo, name or eid")
	animalCmd.Flags().StringVar(&animalFilter.Value, "value", "", "search value (asterisk wildcards allowed)")
	_ = animalCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(animalCmd)
}
