// Package main provides the cardctl CLI for running card game rulesets.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/signalnine/cardrules/presets"
	"github.com/signalnine/cardrules/simulation"
)

var (
	preset   string
	players  int
	games    int
	seed     int64
	verbose  bool
	showList bool
)

func init() {
	flag.StringVar(&preset, "preset", "war", "Ruleset slug to run (see -list)")
	flag.IntVar(&players, "players", 0, "Player count (0 = ruleset minimum)")
	flag.IntVar(&games, "games", 1, "Number of random playouts to run")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = use current time)")
	flag.BoolVar(&verbose, "verbose", false, "Print each playout's result")
	flag.BoolVar(&showList, "list", false, "List registered ruleset slugs and exit")
}

func main() {
	flag.Parse()

	if showList {
		names := presets.Names()
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	rs, ok := presets.ByName(preset)
	if !ok {
		names := presets.Names()
		sort.Strings(names)
		log.Fatalf("unknown preset %q (available: %s)", preset, strings.Join(names, ", "))
	}

	if players > 0 {
		if players < rs.Meta.Players.Min || players > rs.Meta.Players.Max {
			log.Fatalf("%s supports %d-%d players, got %d", rs.Meta.Name, rs.Meta.Players.Min, rs.Meta.Players.Max, players)
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("cardctl: running %d playout(s) of %s (seed=%d)\n", games, rs.Meta.Name, seed)

	stats := simulation.RunBatchWithPlayers(rs, games, uint64(seed), players)

	if verbose {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			log.Printf("warning: failed to print stats: %v", err)
		}
	}

	fmt.Printf("games=%d draws=%d errors=%d avg_turns=%.1f median_turns=%d\n",
		stats.TotalGames, stats.Draws, stats.Errors, stats.AvgTurns, stats.MedianTurns)
}
