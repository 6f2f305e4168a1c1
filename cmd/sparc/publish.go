package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparclabs/sparc/internal/config"
	"github.com/sparclabs/sparc/internal/models"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish all due schedule entries and exit",
	Long:  `Runs a single pass over schedule entries whose time has arrived, delivers each one through its platform adapter, and prints the result. Intended to be invoked from cron.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&configFile, "config", "c", "/etc/sparc/config.yaml", "Path to configuration file")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	sched := buildScheduler(cfg, database, logger)

	entries, err := sched.RunDue(context.Background())
	if err != nil {
		return err
	}

	var published, failed int
	for _, e := range entries {
		switch e.Status {
		case models.StatusPublished:
			published++
		case models.StatusFailed:
			failed++
		}
	}
	fmt.Printf("published %d, failed %d\n", published, failed)
	return nil
}
