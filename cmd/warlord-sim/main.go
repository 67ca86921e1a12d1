// Command warlord-sim plays bot-versus-bot matches offline and prints the
// battle log, or a win tally when several games are requested.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/ericogr/warlord-cards/internal/config"
	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "./warlord_config.yaml", "catalog file (yaml or json)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed of the first game")
	games := flag.Int("games", 1, "number of games to play with consecutive seeds")
	maxTurns := flag.Int("max-turns", 0, "turn cap before a draw (0 keeps the configured value)")
	verbose := flag.Bool("v", false, "log engine events to stderr")
	flag.Parse()
	logging.SetLogger(stderrLogger(*verbose))

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid warlord configuration", err, logging.Fields{"config_path": *configPath})
	}
	rules := cfg.Rules
	if *maxTurns > 0 {
		rules.MaxTurns = *maxTurns
	}
	catalog := engine.NewCatalog(cfg.Cards, cfg.Warlords)

	tally := map[game.Side]int{}
	for i := 0; i < *games; i++ {
		s := *seed + int64(i)
		journal := engine.NewJournal(0)
		b, err := engine.NewBattle(catalog, engine.Options{
			Seed:   s,
			Rules:  rules,
			Player: engine.ControllerBot,
			Bot:    engine.ControllerBot,
			View:   journal,
		})
		if err != nil {
			logging.Fatal("Failed to build battle", err, logging.Fields{"seed": s})
		}
		b.Start()
		b.Close()
		tally[b.Winner()]++

		if *games == 1 {
			for _, line := range journal.Lines() {
				fmt.Println(line)
			}
		}
		fmt.Printf("seed %d: %s after %d turns\n", s, outcome(b.Winner()), b.Turn())
	}
	if *games > 1 {
		fmt.Printf("player %d, bot %d, draws %d\n", tally[game.SidePlayer], tally[game.SideBot], tally[""])
	}
}

// stderrLogger keeps stdout for the battle log.
func stderrLogger(verbose bool) *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func outcome(w game.Side) string {
	if w == "" {
		return "draw"
	}
	return string(w) + " wins"
}
