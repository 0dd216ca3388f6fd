package main

import (
	"subslikescript-crawler/internal/crawler"
	"subslikescript-crawler/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	indexDB   string
	indexData string
)

func init() {
	indexCmd.Flags().StringVar(&indexDB, "db", "./movies.db", "Path to the SQLite database file")
	indexCmd.Flags().StringVar(&indexData, "data", crawler.DefaultOutputDir, "Directory holding the JSONL batch files")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load batch files into a SQLite index for querying.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbs, err := db.NewDBService(indexDB)
		if err != nil {
			return err
		}
		defer dbs.Close()

		n, err := dbs.LoadDir(indexData)
		if err != nil {
			return err
		}
		logrus.Infof("Indexed %d movies into %s", n, indexDB)
		return nil
	},
}
