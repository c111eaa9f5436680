package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tari-tools/universe-mcp-go/events"
)

var (
	watchURL        string
	watchCategories []string
	watchJSON       bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live events from a running Tari Universe",
	Long: `Subscribe to the WebSocket event stream of an already-running Tari
Universe instance and print events as they arrive. Interrupt with Ctrl-C.

  tari-mcp watch
  tari-mcp watch --category mining --category wallet`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "Event stream URL (default ws://127.0.0.1:9001 or events.url from config)")
	watchCmd.Flags().StringArrayVar(&watchCategories, "category", nil, "Event categories to include: wallet, mining, node, p2pool, app (default all)")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print raw event JSON")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	url := watchURL
	if url == "" {
		url = cfg.Events.URL
	}

	if url == "" {
		url = "ws://127.0.0.1:9001"
	}

	stream, err := events.Dial(cmd.Context(), log, url)
	if err != nil {
		return err
	}
	defer stream.Close()

	filter := events.DefaultFilter()
	if len(watchCategories) > 0 {
		filter.Categories = watchCategories
	}

	if err := stream.Subscribe(filter); err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		select {
		case <-interrupt:
			return nil

		case ev, ok := <-stream.Events():
			if !ok {
				return stream.Err()
			}

			if watchJSON {
				if err := printJSON(ev); err != nil {
					return err
				}

				continue
			}

			fmt.Printf("%s  %-28s %s\n", ev.Time().Format("15:04:05"), ev.Type, string(ev.Data))
		}
	}
}
