/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/blood-heros/apiserver/config"
	"github.com/blood-heros/apiserver/internal/logger"
	"github.com/blood-heros/apiserver/internal/repository"
	"github.com/blood-heros/apiserver/internal/seed"
	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	seedDistrictsFile string
	seedUpazilasFile  string
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load districts and upazilas into the database",
	Long: `Upserts the district and upazila reference lists. The bundled lists
are used unless --districts or --upazilas point at JSON files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Log)

		districts, upazilas, err := seedData()
		if err != nil {
			return err
		}

		repos, err := repository.Open(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer repos.Close()

		nd, nu, err := services.NewLocationService(repos.Locations).Seed(cmd.Context(), districts, upazilas)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"districts": nd, "upazilas": nu}).Info("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedDistrictsFile, "districts", "", "JSON file with districts")
	seedCmd.Flags().StringVar(&seedUpazilasFile, "upazilas", "", "JSON file with upazilas")
}

func seedData() ([]types.District, []types.Upazila, error) {
	var (
		districts []types.District
		upazilas  []types.Upazila
		err       error
	)
	if seedDistrictsFile != "" {
		districts, err = seed.LoadDistricts(seedDistrictsFile)
	} else {
		districts, err = seed.Districts()
	}
	if err != nil {
		return nil, nil, err
	}
	if seedUpazilasFile != "" {
		upazilas, err = seed.LoadUpazilas(seedUpazilasFile)
	} else {
		upazilas, err = seed.Upazilas()
	}
	if err != nil {
		return nil, nil, err
	}
	return districts, upazilas, nil
}
