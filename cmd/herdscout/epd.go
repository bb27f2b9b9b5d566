package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var (
	epdTraits []string
	epdSort   string
	epdSex    string
)

var epdCmd = &cobra.Command{
	Use:   "epd",
	Short: "Search animals by EPD trait windows",
	Long: `Search animals whose EPD values fall inside the given trait windows.
Each --trait takes the form key:min=N,max=N,acc=N with every bound optional.
Known trait keys: ` + strings.Join(search.TraitKeys(), ", ") + `.`,
	Example: `  herdscout epd --trait ww:min=60 --sort ww
  herdscout epd --trait milk:min=20,max=35 --trait ced:acc=0.4 --sex bulls`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := models.EPDFilter{
			Sex:    epdSex,
			Sort:   epdSort,
			Traits: map[string]models.TraitRange{},
		}
		for _, spec := range epdTraits {
			key, window, err := parseTraitSpec(spec)
			if err != nil {
				return err
			}
			filter.Traits[key] = window
		}

		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchEPD(ctx, filter)
			if err != nil {
				return err
			}
			return output(result, form.KindEPD)
		})
	},
}

// parseTraitSpec parses "ww:min=60,max=100,acc=0.4" into a trait key and
// range. The key is validated against the trait registry.
func parseTraitSpec(spec string) (string, models.TraitRange, error) {
	key, bounds, found := strings.Cut(spec, ":")
	key = strings.ToLower(strings.TrimSpace(key))

	trait, ok := search.TraitByKey(key)
	if !ok {
		return "", models.TraitRange{}, fmt.Errorf(
			"unknown trait %q (want one of %s)", key, strings.Join(search.TraitKeys(), ", "))
	}

	var window models.TraitRange
	if !found || strings.TrimSpace(bounds) == "" {
		return "", models.TraitRange{}, fmt.Errorf(
			"trait %q needs at least one bound, e.g. %s:min=0", key, trait.Key)
	}

	for _, part := range strings.Split(bounds, ",") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return "", models.TraitRange{}, fmt.Errorf(
				"bad trait bound %q in %q (want min=, max= or acc=)", part, spec)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "min":
			window.Min = value
		case "max":
			window.Max = value
		case "acc":
			window.Accuracy = value
		default:
			return "", models.TraitRange{}, fmt.Errorf(
				"bad trait bound %q in %q (want min=, max= or acc=)", part, spec)
		}
	}

	return trait.Key, window, nil
}

func init() {
	epdCmd.Flags().StringArrayVar(&epdTraits, "trait", nil, "trait window, e.g. ww:min=60,max=100,acc=0.4 (repeatable)")
	epdCmd.Flags().StringVar(&epdSort, "sort", "", "sort results by trait (e.g. ww or 'weaning weight')")
	epdCmd.Flags().StringVar(&epdSex, "sex", "", "bulls, cows or both (default both)")
	_ = epdCmd.MarkFlagRequired("trait")
	rootCmd.AddCommand(epdCmd)
}
