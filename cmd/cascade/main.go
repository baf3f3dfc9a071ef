// cascade is a falling-block puzzle for the terminal where cleared
// rows split the remaining blocks into floating groups that drop and
// can trigger chain clears.
//
// Usage:
//
//	cascade play [variant]   - Play (standard field by default)
//	cascade menu             - Pick a field variant interactively
//	cascade list             - List available field variants
//	cascade serve            - Start SSH server for remote play
//	cascade scores [variant] - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.cascade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game variants to register them
	_ "github.com/vovakirdan/tui-cascade/internal/games/cascade"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Cascade - Falling-block chain puzzle in your terminal",
	Long: `Cascade is a terminal falling-block puzzle. Clearing a row splits
the blocks above into independent groups that fall on their own,
and any rows they complete clear again with a growing bonus.

Available commands:
  list     - Show all field variants
  play     - Play directly (standard field by default)
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  cascade play
  cascade play cascade_large
  cascade menu
  cascade serve --ssh :2222
  cascade scores cascade`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cascade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
