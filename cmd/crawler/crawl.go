package main

import (
	"os"
	"time"

	"subslikescript-crawler/internal/crawler"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var crawlCfg = crawler.DefaultConfig()

func init() {
	f := crawlCmd.Flags()
	f.IntVar(&crawlCfg.StartPage, "start", crawlCfg.StartPage, "First listing page to scrape")
	f.IntVar(&crawlCfg.EndPage, "end", crawlCfg.EndPage, "Last listing page to scrape (inclusive)")
	f.IntVar(&crawlCfg.PagesPerFile, "pages-per-file", crawlCfg.PagesPerFile, "Listing pages per output file")
	f.StringVar(&crawlCfg.OutputDir, "out", crawlCfg.OutputDir, "Directory for the JSONL batch files")
	f.StringVar(&crawlCfg.BaseURL, "base-url", crawlCfg.BaseURL, "Site to scrape")
	f.StringVar(&crawlCfg.UserAgent, "user-agent", crawlCfg.UserAgent, "User-Agent header sent with every request")
	f.DurationVar(&crawlCfg.Delay, "delay", crawlCfg.Delay, "Pause after every request")
	f.Float64Var(&crawlCfg.RatePerSecond, "rate", 0, "Requests per second; replaces --delay when > 0")
	f.DurationVar(&crawlCfg.Timeout, "timeout", crawlCfg.Timeout, "Per-request timeout (0 disables)")
	f.StringVar(&crawlCfg.ProxyURL, "proxy", os.Getenv("PROXY_URL"), "HTTP or SOCKS5 proxy URL (default $PROXY_URL)")
	f.BoolVar(&crawlCfg.RespectRobots, "robots", false, "Skip URLs disallowed by robots.txt")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Scrape listing pages and write one JSONL file per batch of pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := crawler.NewCrawler(crawlCfg)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"start":          c.Config.StartPage,
			"end":            c.Config.EndPage,
			"pages_per_file": c.Config.PagesPerFile,
			"out":            c.Config.OutputDir,
		}).Infof("Starting to scrape %s", c.Config.BaseURL)

		t1 := time.Now()
		sum, err := c.Run(cmd.Context())
		logrus.WithFields(logrus.Fields{
			"pages":            sum.Pages,
			"movies":           sum.Movies,
			"listing_failures": sum.ListingFailures,
			"movie_failures":   sum.MovieFailures,
			"files":            len(sum.Files),
			"seconds":          time.Since(t1).Seconds(),
		}).Info("Crawl finished")
		return err
	},
}
