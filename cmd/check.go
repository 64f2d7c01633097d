package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"db-struct-check/internal/check"
	"db-struct-check/internal/engine"

	"github.com/fatih/color"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errMismatch = errors.New("structure mismatch")

var (
	srcSnapshot string
	dstSnapshot string
	failOnDiff  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare table and index structure of src against dst",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, err := openEndpoint(ctx, roleSrc, srcSnapshot)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := openEndpoint(ctx, roleDst, dstSnapshot)
		if err != nil {
			return err
		}
		defer dst.Close()

		filter, err := newFilter()
		if err != nil {
			return err
		}
		schemas, err := resolveSchemas(ctx, src.source)
		if err != nil {
			return err
		}

		logDir := viper.GetString("settings.check_log_dir")
		Logger.Info("starting check", zap.Strings("schemas", schemas), zap.String("log_dir", logDir))
		start := time.Now()

		// 1. Setup Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(len(schemas)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Checking: "
		})

		// 2. Classify
		checker := &engine.Checker{
			Src:      src.source,
			Dst:      dst.source,
			Filter:   filter,
			Parallel: viper.GetInt("settings.parallel"),
			Logger:   Logger,
		}
		outcome, err := checker.Run(ctx, schemas, func(string) {
			bar.Incr()
		})

		uiprogress.Stop()

		if err != nil {
			return err
		}

		// 3. Write Logs
		if err := check.WriteLogs(logDir, outcome); err != nil {
			return err
		}

		// 4. Final Report
		printReport(os.Stdout, logDir, outcome)
		Logger.Info("check done", zap.Duration("elapsed", time.Since(start)))

		if failOnDiff && !outcome.Clean() {
			return fmt.Errorf("%w: %d miss, %d diff, %d extra",
				errMismatch, len(outcome.Misses), len(outcome.Diffs), len(outcome.Extras))
		}
		return nil
	},
}

func printReport(w io.Writer, logDir string, o *check.Outcome) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	rows := []struct {
		name  string
		count int
		file  string
	}{
		{"miss", len(o.Misses), check.MissLog},
		{"diff", len(o.Diffs), check.DiffLog},
		{"extra", len(o.Extras), check.ExtraLog},
	}

	fmt.Fprintln(w, "\n📊 Check Report:")
	for _, r := range rows {
		icon := ok("✓")
		if r.count > 0 {
			icon = bad("!")
		}
		fmt.Fprintf(w, "[%s] %-6s : %d -> %s\n", icon, r.name, r.count, filepath.Join(logDir, r.file))
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	if o.Clean() {
		fmt.Fprintln(w, ok("Structures match"))
	} else {
		fmt.Fprintln(w, bad("Structures differ"))
	}
}

func init() {
	RootCmd.AddCommand(checkCmd)

	// CLI Flags
	checkCmd.Flags().StringVar(&srcSnapshot, "src-snapshot", "", "Read src statements from a snapshot file instead of a database")
	checkCmd.Flags().StringVar(&dstSnapshot, "dst-snapshot", "", "Read dst statements from a snapshot file instead of a database")
	checkCmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", false, "Exit with an error when any miss, diff or extra is found")
}
