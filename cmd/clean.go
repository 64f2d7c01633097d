package cmd

import (
	"fmt"

	"db-struct-check/internal/check"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove check logs from the log dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("settings.check_log_dir")
		removed, err := check.RemoveLogs(dir)
		for _, p := range removed {
			fmt.Printf("🧹 Removed %s\n", p)
		}
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Printf("Nothing to clean in %s\n", dir)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}
