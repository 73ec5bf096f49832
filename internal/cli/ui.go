package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/models"
	"github.com/sclera-app/sclera/internal/notify"
	"github.com/sclera-app/sclera/internal/tour"
	"github.com/sclera-app/sclera/internal/tui"
)

var tutorialParam string

func init() {
	uiCmd.Flags().StringVar(&tutorialParam, "tutorial", "", "tutorial launch mode (\"start\" forces the walkthrough)")
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the Sclera dashboard",
	Long:  "Launch the Sclera terminal dashboard, including the onboarding walkthrough.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

func runUI(ctx context.Context) error {
	if !hasTTY() {
		return errors.New("the dashboard requires an interactive terminal")
	}

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	accountType := models.AccountType(cfg.AccountType)
	catalog, err := tour.CatalogFor(accountType)
	if err != nil {
		return fmt.Errorf("load walkthrough catalog: %w", err)
	}

	return tui.Run(ctx, tui.Config{
		Flags:       db.NewPrefsRepository(database),
		Notifier:    notify.NewClient(cfg.APIBaseURL),
		Catalog:     catalog,
		Launch:      tour.LaunchParams{Tutorial: tutorialParam},
		AccountType: accountType,
	})
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
