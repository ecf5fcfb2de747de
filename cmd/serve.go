package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Araon/Steno/internal/server"
	"github.com/Araon/Steno/internal/tagger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the caption HTTP API",
	Long: `Serve the caption pipeline over HTTP: transcription, caption generation,
end-to-end processing, and stored-video retrieval.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	listenAddr string
	storageDir string
)

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from config, :8000)")
	serveCmd.Flags().StringVar(&storageDir, "storage-dir", "", "video storage directory (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if storageDir != "" {
		cfg.StorageDir = storageDir
	}
	if err := cfg.Captions.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, tagger.NewProse())
}
