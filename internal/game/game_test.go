package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/slidetile/internal/board"
)

// newTestGame returns a game over the given grid with a fixed seed.
func newTestGame(grid board.Grid) *Game {
	g := newGame(Config{Seed: 42})
	g.board = board.FromGrid(grid, rand.New(rand.NewSource(42)))
	return g
}

// almostStuck becomes stuck after a Left move spawns into (0,3).
var almostStuck = board.Grid{
	{0, 2, 3, 2},
	{1, 2, 1, 2},
	{2, 1, 2, 1},
	{1, 2, 1, 2},
}

func TestNewGame(t *testing.T) {
	g := newGame(Config{Seed: 7})

	if g.state != StatePlaying {
		t.Errorf("state = %v, want StatePlaying", g.state)
	}
	if got := g.board.Count(); got != board.StartTiles {
		t.Errorf("board.Count() = %d, want %d", got, board.StartTiles)
	}
	if g.sessionID == "" {
		t.Error("sessionID should be set")
	}
	if !g.running {
		t.Error("running should be true")
	}
}

func TestNewGameSeed(t *testing.T) {
	g1 := newGame(Config{Seed: 1234})
	g2 := newGame(Config{Seed: 1234})

	if g1.board.Grid() != g2.board.Grid() {
		t.Error("games with the same seed should start with the same board")
	}

	g3 := newGame(Config{})
	if g3.seed == 0 {
		t.Error("seed 0 should be replaced with a random seed")
	}
}

func TestPlayMergesAndSpawns(t *testing.T) {
	g := newTestGame(board.Grid{{1, 1, 0, 0}})
	ctx := context.Background()

	if !g.play(ctx, board.Left) {
		t.Fatal("play(Left) = false, want true")
	}
	if got := g.board.At(0, 0); got != 2 {
		t.Errorf("At(0,0) = %d, want 2", got)
	}
	// One tile from the merge plus one spawned.
	if got := g.board.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
}

func TestPlayNoChangeDoesNotSpawn(t *testing.T) {
	start := board.Grid{{1, 2, 0, 0}}
	g := newTestGame(start)

	if g.play(context.Background(), board.Left) {
		t.Fatal("play(Left) = true, want false")
	}
	if g.board.Grid() != start {
		t.Errorf("grid changed on a no-op move: %v", g.board.Grid())
	}
	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
	if g.state != StatePlaying {
		t.Errorf("state = %v, want StatePlaying", g.state)
	}
}

func TestPlayReachesGameOver(t *testing.T) {
	g := newTestGame(almostStuck)
	ctx := context.Background()

	if !g.play(ctx, board.Left) {
		t.Fatal("play(Left) = false, want true")
	}
	if !g.board.IsFull() {
		t.Fatal("board should be full after the spawn")
	}
	if g.state != StateGameOver {
		t.Fatalf("state = %v, want StateGameOver", g.state)
	}

	before := g.board.Grid()
	for _, dir := range board.Directions {
		if g.play(ctx, dir) {
			t.Errorf("play(%s) after game over = true", dir)
		}
	}
	if g.board.Grid() != before {
		t.Error("board changed after game over")
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(almostStuck)
	ctx := context.Background()
	g.play(ctx, board.Left)

	g.apply(ctx, command{action: actionRestart})

	if g.state != StatePlaying {
		t.Errorf("state after restart = %v, want StatePlaying", g.state)
	}
	if got := g.board.Count(); got != board.StartTiles {
		t.Errorf("Count() after restart = %d, want %d", got, board.StartTiles)
	}
	if g.moves != 0 {
		t.Errorf("moves after restart = %d, want 0", g.moves)
	}
}

func TestApplyQuit(t *testing.T) {
	g := newTestGame(board.Grid{})
	g.apply(context.Background(), command{action: actionQuit})

	if g.running {
		t.Error("running should be false after quit")
	}
}

func TestApplyNone(t *testing.T) {
	start := board.Grid{{0, 1, 0, 1}}
	g := newTestGame(start)
	g.apply(context.Background(), command{action: actionNone})

	if g.board.Grid() != start || !g.running {
		t.Error("actionNone should not change the game")
	}
}

func TestPlayTracesMove(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	g := newTestGame(board.Grid{{0, 0, 1, 1}})
	g.play(context.Background(), board.Left)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "board.move" {
		t.Errorf("span name = %q, want %q", span.Name(), "board.move")
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["move.direction"].AsString(); got != "left" {
		t.Errorf("move.direction = %q, want %q", got, "left")
	}
	if !attrs["move.changed"].AsBool() {
		t.Error("move.changed = false, want true")
	}
	if got := attrs["board.tiles"].AsInt64(); got != 2 {
		t.Errorf("board.tiles = %d, want 2", got)
	}
	if _, ok := attrs["spawn.row"]; !ok {
		t.Error("spawn.row attribute missing")
	}
}

// newSimGame returns a game drawing to a simulation screen, over the given grid.
func newSimGame(t *testing.T, cfg Config, grid board.Grid) (*Game, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen Init() error: %v", err)
	}
	sim.SetSize(80, 24)

	g, err := NewWithScreen(cfg, sim)
	if err != nil {
		t.Fatalf("NewWithScreen() error: %v", err)
	}
	g.board = board.FromGrid(grid, rand.New(rand.NewSource(42)))
	return g, sim
}

// runWithTimeout runs g until it returns or the deadline passes.
func runWithTimeout(t *testing.T, ctx context.Context, g *Game) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestRunKeyMovesAndSpawns(t *testing.T) {
	g, sim := newSimGame(t, Config{Seed: 42}, board.Grid{{1, 1, 0, 0}})

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := runWithTimeout(t, context.Background(), g); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := g.board.At(0, 0); got != 2 {
		t.Errorf("At(0,0) = %d, want 2", got)
	}
	// The merged tile plus exactly one spawn.
	if got := g.board.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
	if g.screen != nil {
		t.Error("screen should be closed after Run")
	}
}

func TestRunNoopKeyDoesNotSpawn(t *testing.T) {
	start := board.Grid{{1, 2, 0, 0}}
	g, sim := newSimGame(t, Config{Seed: 42}, start)

	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := runWithTimeout(t, context.Background(), g); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if g.board.Grid() != start {
		t.Errorf("grid = %v, want unchanged %v", g.board.Grid(), start)
	}
}

func TestRunOpeningMoves(t *testing.T) {
	cfg := Config{Seed: 42, Opening: []board.Direction{board.Left}}
	g, sim := newSimGame(t, cfg, board.Grid{{0, 0, 1, 1}})

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := runWithTimeout(t, context.Background(), g); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := g.board.At(0, 0); got != 2 {
		t.Errorf("At(0,0) = %d, want 2", got)
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
}

func TestRunCancel(t *testing.T) {
	g, _ := newSimGame(t, Config{Seed: 42}, board.Grid{{1}})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	err := runWithTimeout(t, ctx, g)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNewWithScreenUnknownTheme(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen Init() error: %v", err)
	}
	defer sim.Fini()

	if _, err := NewWithScreen(Config{Theme: "no-such-theme"}, sim); err == nil {
		t.Error("NewWithScreen() with unknown theme should fail")
	}
}
