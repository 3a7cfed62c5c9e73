package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/slidetile/internal/board"
	"github.com/samdwyer/slidetile/internal/telemetry"
	"github.com/samdwyer/slidetile/internal/theme"
	"github.com/samdwyer/slidetile/internal/ui"
)

const (
	helpText     = "arrows/wasd: move  r: restart  q: quit"
	gameOverText = "Game over!  r: restart  q: quit"
)

// Game holds the entire game state.
type Game struct {
	cfg       Config
	seed      int64
	sessionID string
	screen    *ui.Screen
	renderer  *ui.Renderer
	board     *board.Board
	state     State
	moves     int
	running   bool
}

// New creates a new game instance attached to the terminal.
func New(cfg Config) (*Game, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	g, err := NewWithScreen(cfg, s)
	if err != nil {
		s.Fini()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to an initialized tcell screen.
// The game finalizes the screen when Run returns.
func NewWithScreen(cfg Config, s tcell.Screen) (*Game, error) {
	th, err := theme.Get(cfg.Theme)
	if err != nil {
		return nil, err
	}
	palette, err := th.Palette()
	if err != nil {
		return nil, err
	}

	style := tcell.StyleDefault.
		Background(theme.ToTcell(palette.Background)).
		Foreground(theme.ToTcell(palette.Text))
	screen := ui.WrapScreen(s, style)

	g := newGame(cfg)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, palette, cfg.Classic)
	return g, nil
}

// newGame creates the game state without a screen.
func newGame(cfg Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:       cfg,
		seed:      seed,
		sessionID: uuid.New().String(),
		board:     board.New(rand.New(rand.NewSource(seed))),
		state:     StatePlaying,
		running:   true,
	}
}

// Run executes the main game loop. The screen is redrawn once per input event.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, span := tracer.Start(ctx, "game.session")
	span.SetAttributes(
		attribute.String("session.id", g.sessionID),
		attribute.Int64("game.seed", g.seed),
		attribute.Bool("game.classic", g.cfg.Classic),
		attribute.String("game.theme", g.cfg.Theme),
	)
	defer func() {
		span.SetAttributes(
			attribute.Int("game.moves", g.moves),
			attribute.Int("board.max_rank", int(g.maxRank())),
			attribute.String("game.state", g.state.String()),
		)
		span.End()
	}()

	for _, dir := range g.cfg.Opening {
		g.play(ctx, dir)
	}

	// Cancelling ctx wakes the blocked PollEvent.
	screen := g.screen
	stop := context.AfterFunc(ctx, screen.Interrupt)

	var err error
	for g.running {
		if err = ctx.Err(); err != nil {
			break
		}

		g.render()
		g.handleInput(ctx)
	}

	stop()
	g.Close()
	return err
}

// render draws the current board and status line.
func (g *Game) render() {
	status := helpText
	if g.state == StateGameOver {
		status = gameOverText
	}
	g.renderer.Render(g.board.Grid(), status, g.state == StateGameOver)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		// Loop re-checks the context.
	case nil:
		// Screen finalized.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	g.apply(ctx, decodeKey(ev.Key(), ev.Rune()))
}

// apply executes a decoded command.
func (g *Game) apply(ctx context.Context, cmd command) {
	switch cmd.action {
	case actionQuit:
		g.running = false
	case actionRestart:
		g.restart(ctx)
	case actionMove:
		g.play(ctx, cmd.dir)
	}
}

// play moves the board and, if anything changed, spawns a tile.
// It returns whether the move changed the grid.
func (g *Game) play(ctx context.Context, dir board.Direction) bool {
	if g.state == StateGameOver {
		return false
	}

	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.move")
	defer span.End()

	changed := g.board.Move(dir)
	span.SetAttributes(
		attribute.String("move.direction", dir.String()),
		attribute.Bool("move.changed", changed),
	)

	if changed {
		g.moves++
		if !g.board.IsFull() {
			row, col, err := g.board.SpawnTile()
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetAttributes(
					attribute.Int("spawn.row", row),
					attribute.Int("spawn.col", col),
				)
			}
		}
	}

	if !g.board.CanMove() {
		g.state = StateGameOver
	}

	span.SetAttributes(
		attribute.Int("board.tiles", g.board.Count()),
		attribute.Int("game.moves", g.moves),
		attribute.String("game.state", g.state.String()),
	)
	return changed
}

// restart starts a fresh board with the same random source.
func (g *Game) restart(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.restart")
	span.SetAttributes(
		attribute.Int("game.moves", g.moves),
		attribute.String("game.state", g.state.String()),
	)
	span.End()

	g.board.Reset()
	g.state = StatePlaying
	g.moves = 0
}

// maxRank returns the highest rank on the board.
func (g *Game) maxRank() board.Rank {
	var m board.Rank
	grid := g.board.Grid()
	for row := range grid {
		for _, r := range grid[row] {
			if r > m {
				m = r
			}
		}
	}
	return m
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
