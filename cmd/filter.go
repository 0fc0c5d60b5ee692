package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamusis/hrmatch/internal/roster"
)

var (
	flagFilterSkills        []string
	flagFilterMinExperience int
	flagFilterProject       string
	flagFilterAvailability  string
	flagFilterDomain        string
	flagFilterLocation      string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List employees matching structured criteria",
	Long: `List employees matching every given criterion, in roster order.

Example:
  hrmatch filter --skill python --skill aws --min-experience 3 --availability available`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringArrayVar(&flagFilterSkills, "skill", nil, "Required skill (repeatable, case-insensitive)")
	filterCmd.Flags().IntVar(&flagFilterMinExperience, "min-experience", 0, "Minimum years of experience")
	filterCmd.Flags().StringVar(&flagFilterProject, "project", "", "Substring of a project name")
	filterCmd.Flags().StringVar(&flagFilterAvailability, "availability", "", "available or busy")
	filterCmd.Flags().StringVar(&flagFilterDomain, "domain", "", "Domain (case-insensitive)")
	filterCmd.Flags().StringVar(&flagFilterLocation, "location", "", "Location (case-insensitive)")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	c, err := filterCriteria(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	profiles, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return err
	}
	printProfiles(roster.Filter(profiles, c))
	return nil
}

func filterCriteria(cmd *cobra.Command) (roster.Criteria, error) {
	c := roster.Criteria{
		Skills:   flagFilterSkills,
		Project:  flagFilterProject,
		Domain:   flagFilterDomain,
		Location: flagFilterLocation,
	}
	if cmd.Flags().Changed("min-experience") {
		n := flagFilterMinExperience
		c.MinExperience = &n
	}
	if flagFilterAvailability != "" {
		a, err := roster.ParseAvailability(flagFilterAvailability)
		if err != nil {
			return c, err
		}
		c.Availability = a
	}
	return c, nil
}
