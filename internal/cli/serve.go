package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sclera-app/sclera/internal/aggregate"
	"github.com/sclera-app/sclera/internal/api"
	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/logging"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Sclera API service",
	Long:  "Run the Sclera HTTP API, including the write-triggered class summary aggregation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	users := db.NewUserRepository(database)
	summaries := db.NewSummaryRepository(database)
	tourEvents := db.NewTourEventRepository(database)

	dispatcher := aggregate.NewDispatcher()
	dispatcher.OnResultCreated(aggregate.NewClassSummaryUpdater(users, summaries))
	dispatcher.OnSessionWritten(aggregate.NewSessionBucketer(users, cfg.Timezone))

	handlers := api.NewHandlers(users, summaries, tourEvents, dispatcher)
	server := api.NewServer(cfg.ListenAddr, handlers)

	logger := logging.Component("cli")
	logger.Info().Str("addr", cfg.ListenAddr).Msg("starting API service")
	return server.Run(ctx)
}
