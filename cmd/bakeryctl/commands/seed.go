package commands

import (
	"fmt"

	"bakery-api/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all bakeries and baked goods with the sample catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		res, err := seed.Run(cmd.Context(), db)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d bakeries and %d baked goods\n", res.Bakeries, res.BakedGoods)
		return nil
	},
}
