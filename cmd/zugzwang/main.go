// Command zugzwang plays one self-play game with the AutoSolver and
// reports what it did: a progress bar for the move loop itself, a
// short-lived terminal dashboard of the per-move algorithm log, and an
// HTML line chart of search cost per move for later inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/schollz/progressbar/v3"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/connect4"
	"github.com/kasparovbot/zugzwang/pkg/games/reversi"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

func main() {
	gameName := flag.String("game", "tictactoe", "game to self-play: tictactoe, connect4, or reversi")
	profileName := flag.String("profile", "classic", "AutoSolver dispatch profile: classic or fast")
	depth := flag.Int("depth", 6, "nominal search depth handed to every depth-bounded algorithm")
	maxMoves := flag.Int("max-moves", 200, "move cap, as a safety valve against an unexpectedly long game")
	dashboard := flag.Duration("dashboard", 3*time.Second, "how long to show the terminal dashboard before exiting (0 disables it)")
	flag.Parse()

	g, err := selectGame(*gameName)
	if err != nil {
		log.Fatal(err)
	}
	profile := search.Profile(*profileName)

	solver, err := search.NewAutoSolver(g, profile, *depth)
	if err != nil {
		log.Fatalf("zugzwang: %v", err)
	}

	bar := progressbar.NewOptions(
		*maxMoves,
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetItsString("move"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)

	state := g.InitialState()
	for moves := 0; moves < *maxMoves && !g.IsTerminal(state); moves++ {
		next, err := solver.ChooseBestMove(state)
		if err != nil {
			log.Fatalf("zugzwang: move %d: %v", moves+1, err)
		}
		if next == nil {
			break // no legal action; IsTerminal should already have caught this
		}
		state = *next
		_ = bar.Add(1)
	}
	_ = bar.Close()

	fmt.Println()
	fmt.Printf("zugzwang: game over after %d moves, winner: %s\n", len(solver.History()), g.Winner(state))

	if *dashboard > 0 {
		showDashboard(solver.History(), *dashboard)
	}

	if err := plotTelemetry(solver.History(), "search-telemetry.html"); err != nil {
		log.Printf("zugzwang: could not write telemetry chart: %v", err)
	}
}

func selectGame(name string) (game.Game, error) {
	switch name {
	case "tictactoe":
		return tictactoe.New(), nil
	case "connect4":
		return connect4.New(), nil
	case "reversi":
		return reversi.New(), nil
	default:
		return nil, fmt.Errorf("zugzwang: unknown game %q", name)
	}
}

// showDashboard renders the AutoSolver's decision history as a table and
// leaves it on screen for duration, or until the user presses q.
func showDashboard(history []search.Record, duration time.Duration) {
	if err := ui.Init(); err != nil {
		log.Printf("zugzwang: termui init failed, skipping dashboard: %v", err)
		return
	}
	defer ui.Close()

	table := widgets.NewTable()
	table.Title = "AutoSolver decision log"
	table.Rows = [][]string{{"#", "player", "algorithm", "reason", "nodes", "elapsed"}}
	for _, r := range history {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(r.MoveNumber),
			r.Player.String(),
			r.Algorithm,
			r.Reason,
			strconv.Itoa(r.Nodes),
			r.Elapsed.String(),
		})
	}
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.RowSeparator = true
	width, height := 100, len(table.Rows)+2
	table.SetRect(0, 0, width, height)

	ui.Render(table)

	events := ui.PollEvents()
	timeout := time.NewTimer(duration)
	defer timeout.Stop()

	for {
		select {
		case e := <-events:
			if e.ID == "q" || e.ID == "<C-c>" {
				return
			}
		case <-timeout.C:
			return
		}
	}
}

// plotTelemetry writes an HTML line chart of nodes explored and elapsed
// time per move, mirroring the shape of an error-over-epochs plot:
// one named series per metric, rendered straight to a file on disk.
func plotTelemetry(history []search.Record, path string) error {
	labels := make([]string, len(history))
	nodes := make([]opts.LineData, len(history))
	millis := make([]opts.LineData, len(history))

	for i, r := range history {
		labels[i] = strconv.Itoa(r.MoveNumber)
		nodes[i] = opts.LineData{Value: r.Nodes}
		millis[i] = opts.LineData{Value: r.Elapsed.Milliseconds()}
	}

	line := charts.NewLine()
	line.SetXAxis(labels).
		AddSeries("nodes explored", nodes).
		AddSeries("elapsed (ms)", millis)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}
