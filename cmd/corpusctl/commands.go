package main

import (
	"fmt"

	"corpus-backend/internal/config"
	"corpus-backend/internal/database"
	"corpus-backend/internal/repository"
	"corpus-backend/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logrus.Logger

	fromSource  string
	touchSource string
	corpusDir   string

	rootCmd = &cobra.Command{
		Use:           "corpusctl",
		Short:         "Manage the persisted movie dialogue corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFile()
			cfg = config.Load()
			log = config.NewLogger()
			if corpusDir != "" {
				cfg.Corpus.Dir = corpusDir
			}
			return nil
		},
	}

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Replace the PostgreSQL corpus with the CSV files of a source",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}

	uploadCmd = &cobra.Command{
		Use:   "upload",
		Short: "Copy the CSV files of a local directory to the bucket",
		Args:  cobra.NoArgs,
		RunE:  runUpload,
	}

	touchCmd = &cobra.Command{
		Use:   "touch",
		Short: "Publish a new update marker so servers reload the corpus",
		Args:  cobra.NoArgs,
		RunE:  runTouch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusDir, "dir", "", "corpus directory (overrides CORPUS_DIR)")
	importCmd.Flags().StringVar(&fromSource, "from", "", "source to import from: dir or bucket (default CORPUS_SOURCE)")
	touchCmd.Flags().StringVar(&touchSource, "source", "", "source to touch: dir or bucket (default CORPUS_SOURCE)")

	rootCmd.AddCommand(importCmd, uploadCmd, touchCmd)
}

// openSource opens the CSV source named by source, or the configured one.
func openSource(cmd *cobra.Command, source string) (*storage.Source, error) {
	c := *cfg
	if source != "" {
		c.Corpus.Source = source
	}
	store, err := storage.Open(cmd.Context(), &c, log)
	if err != nil {
		return nil, err
	}
	return storage.NewSource(store, log), nil
}

func runImport(cmd *cobra.Command, args []string) error {
	source, err := openSource(cmd, fromSource)
	if err != nil {
		return err
	}
	records, _, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	name := fromSource
	if name == "" {
		name = cfg.Corpus.Source
	}
	syncLog, err := repository.NewPostgresRepository(db, log).Import(cmd.Context(), records, name)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d movies, %d characters, %d conversations, %d lines\n",
		syncLog.Movies, syncLog.Characters, syncLog.Conversations, syncLog.Lines)
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	local, err := openSource(cmd, config.SourceDir)
	if err != nil {
		return err
	}
	records, _, err := local.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.Corpus.Dir, err)
	}

	bucket, err := openSource(cmd, config.SourceBucket)
	if err != nil {
		return err
	}
	marker, err := bucket.WriteAll(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to bucket %s, marker %d\n", cfg.Corpus.Dir, cfg.MinIO.BucketName, marker)
	return nil
}

func runTouch(cmd *cobra.Command, args []string) error {
	source, err := openSource(cmd, touchSource)
	if err != nil {
		return err
	}
	marker, err := source.Touch(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), marker)
	return nil
}
