package cmd

import (
	"fmt"

	"db-struct-check/internal/engine"
	"db-struct-check/internal/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractRole string
	extractOut  string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Save the structure statements of one side to a snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractRole != roleSrc && extractRole != roleDst {
			return fmt.Errorf("invalid role %q (want %s or %s)", extractRole, roleSrc, roleDst)
		}
		out := extractOut
		if out == "" {
			out = extractRole + ".yaml"
		}
		ctx := cmd.Context()

		ep, err := openEndpoint(ctx, extractRole, "")
		if err != nil {
			return err
		}
		defer ep.Close()

		schemas, err := resolveSchemas(ctx, ep.source)
		if err != nil {
			return err
		}

		Logger.Info("extracting", zap.String("role", extractRole), zap.Strings("schemas", schemas))
		set, err := engine.Extract(ctx, ep.source, schemas)
		if err != nil {
			return err
		}
		if err := snapshot.Save(out, ep.driver, set); err != nil {
			return err
		}

		fmt.Printf("📦 Saved %d objects to %s\n", set.Len(), out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractRole, "role", roleSrc, "Side to extract (src or dst)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Snapshot file (default is ./<role>.yaml)")
}
