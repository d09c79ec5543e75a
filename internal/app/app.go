// Package app runs FoodMaze in the terminal. It owns the event loop that
// drives the game session, so every session call happens on one goroutine.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/foodmaze/internal/audio"
	"github.com/samdwyer/foodmaze/internal/game"
	"github.com/samdwyer/foodmaze/internal/gamedata"
	"github.com/samdwyer/foodmaze/internal/maze"
	"github.com/samdwyer/foodmaze/internal/telemetry"
	"github.com/samdwyer/foodmaze/internal/ui"
)

// Options configures a Game.
type Options struct {
	Config  game.Config
	Variant string
	Palette gamedata.Palette
	Player  audio.Player // nil plays no sound
	Volume  float64
}

// Game holds the terminal front end and its session.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *game.Session
	status   *status
	variant  string
	hint     bool
	running  bool
}

// New creates a game on an initialized screen.
func New(screen *ui.Screen, opts Options) (*Game, error) {
	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, opts.Palette),
		status:   newStatus(),
		variant:  opts.Variant,
		running:  true,
	}

	listeners := game.Listeners{g.status, audio.NewCues(opts.Player, opts.Volume)}
	session, err := game.NewSession(opts.Config, newLoopScheduler(screen), game.WithListener(listeners))
	if err != nil {
		return nil, err
	}
	g.session = session
	return g, nil
}

// Run executes the main loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("app")
	_, span := tracer.Start(ctx, "app.run")
	cfg := g.session.Config()
	span.SetAttributes(
		attribute.String("app.variant", g.variant),
		attribute.Int("app.rows", cfg.Rows),
		attribute.Int("app.cols", cfg.Cols),
		attribute.Int("app.levels", cfg.LevelCount),
	)
	defer span.End()

	stop := context.AfterFunc(ctx, func() {
		_ = g.screen.PostEvent(tcell.NewEventInterrupt(g.quit))
	})
	defer stop()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.session.Close()
	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case nil:
		// Screen finalized
		g.running = false
	case *tcell.EventKey:
		g.apply(ctx, actionFor(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		runInterrupt(ev)
	}
}

type action int

const (
	actionNone action = iota
	actionQuit
	actionStart
	actionRestart
	actionHint
	actionUp
	actionDown
	actionLeft
	actionRight
)

// actionFor maps a key press to a game action.
func actionFor(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionStart
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actionQuit
		case ' ':
			return actionStart
		case 'r', 'R':
			return actionRestart
		case 'h', 'H':
			return actionHint
		case 'w', 'W':
			return actionUp
		case 's', 'S':
			return actionDown
		case 'a', 'A':
			return actionLeft
		case 'd', 'D':
			return actionRight
		}
	}
	return actionNone
}

// apply performs a game action.
func (g *Game) apply(ctx context.Context, a action) {
	switch a {
	case actionQuit:
		g.quit()
	case actionStart:
		err := g.session.StartGame(ctx)
		switch {
		case errors.Is(err, game.ErrGameInProgress):
			g.status.message = msgRunning
		case err != nil:
			g.fail(err)
		}
	case actionRestart:
		if err := g.session.RestartGame(ctx); err != nil {
			g.fail(err)
		}
	case actionHint:
		g.hint = !g.hint
	case actionUp:
		g.session.AttemptMove(game.Up)
	case actionDown:
		g.session.AttemptMove(game.Down)
	case actionLeft:
		g.session.AttemptMove(game.Left)
	case actionRight:
		g.session.AttemptMove(game.Right)
	}
}

func (g *Game) fail(err error) {
	log.Printf("Could not start game: %v", err)
	g.status.message = fmt.Sprintf("Could not build a maze: %v", err)
}

func (g *Game) quit() {
	g.running = false
}

func (g *Game) render() {
	g.renderer.Render(g.frame())
}

func (g *Game) frame() ui.Frame {
	snap := g.session.Snapshot()
	f := ui.Frame{
		Snapshot: snap,
		Message:  g.status.message,
		Variant:  g.variant,
	}
	if g.hint && snap.Running && snap.Grid != nil {
		f.Hint = maze.ShortestPath(snap.Grid, snap.Player, snap.Food)
	}
	return f
}
