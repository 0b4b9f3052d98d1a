// Package main provides the NeoDB CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neodb/neodb/pkg/config"
	"github.com/neodb/neodb/pkg/neodb"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neodb",
		Short: "NeoDB - Embedded In-Memory Property Graph Database",
		Long: `NeoDB is an embedded labeled property graph database written in Go.

Features:
  • Labeled nodes and typed directed edges with arbitrary properties
  • Indexed adjacency in both directions
  • Depth-first and breadth-first traversal with a pluggable visitor protocol
  • Shortest-path and simple-path enumeration
  • Tiered hot/warm result caching
  • Optional snapshot persistence backed by BadgerDB`,
	}

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("NeoDB v%s (%s)\n", version, commit)
		},
	})

	// Init command
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new NeoDB data directory",
		RunE:  runInit,
	}
	initCmd.Flags().String("data-dir", "./data", "Data directory")
	rootCmd.AddCommand(initCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long:  "Open the database, restore the latest snapshot, and print node, edge, and cache counters",
		RunE:  runStats,
	}
	statsCmd.Flags().String("data-dir", "./data", "Data directory")
	statsCmd.Flags().String("config", "", "YAML config file (overrides environment)")
	rootCmd.AddCommand(statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	fmt.Printf("📂 Initializing NeoDB database in %s\n", dataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}

	// Create default config file
	configPath := filepath.Join(dataDir, "neodb.yaml")
	configContent := `# NeoDB Configuration
database:
  data_dir: ` + dataDir + `
  persistence_enabled: true
  sync_writes: false
  store_cache_size: 256

cache:
  l1_capacity: 1000
  l2_capacity: 10000
  ttl: 1h

traversal:
  max_depth: 0
  max_path_depth: 15

logging:
  level: info
  format: text
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Open once so the store files exist on disk.
	db, err := neodb.Open(dataDir, nil)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	fmt.Println("✅ Database initialized successfully")
	fmt.Printf("   Config: %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Check it:  neodb stats --data-dir", dataDir)

	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.LoadFromEnv()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db, err := neodb.Open(dataDir, neodb.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	stats := db.Stats()
	fmt.Printf("📊 %s statistics\n", stats.Name)
	fmt.Printf("   Nodes:  %d\n", stats.NodeCount)
	fmt.Printf("   Edges:  %d\n", stats.EdgeCount)
	fmt.Println()
	fmt.Println("Cache:")
	fmt.Printf("   Hot tier:       %d entries\n", stats.Cache.L1Size)
	fmt.Printf("   Warm tier:      %d entries\n", stats.Cache.L2Size)
	fmt.Printf("   Hits / Misses:  %d / %d\n", stats.Cache.Hits, stats.Cache.Misses)
	fmt.Printf("   Hit rate:       %.1f%%\n", stats.Cache.HitRate()*100)
	fmt.Printf("   Evictions:      %d (dropped on demotion: %d)\n",
		stats.Cache.Evictions, stats.Cache.DemotionDrops)

	return nil
}
