package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sclera-app/sclera/internal/db"
)

func init() {
	tourCmd.AddCommand(tourStatusCmd)
	tourCmd.AddCommand(tourResetCmd)
	rootCmd.AddCommand(tourCmd)
}

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Inspect and reset the onboarding walkthrough",
}

var tourStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show walkthrough flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTourStatus(cmd.Context(), cmd)
	},
}

var tourResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear walkthrough flags so the tour offers itself again",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTourReset(cmd.Context())
	},
}

func runTourStatus(ctx context.Context, cmd *cobra.Command) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	prefs := db.NewPrefsRepository(database)
	for _, key := range []string{db.PrefVisited, db.PrefTutorialCompleted, db.PrefTutorialSkipped} {
		set, err := prefs.IsTrue(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", key, set)
	}
	return nil
}

func runTourReset(ctx context.Context) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	prefs := db.NewPrefsRepository(database)
	for _, key := range []string{db.PrefVisited, db.PrefTutorialCompleted, db.PrefTutorialSkipped} {
		if err := prefs.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}
