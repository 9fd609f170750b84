package simulator

import (
	"context"
	"log/slog"
	"time"

	"github.com/simforge/tictactoe-sim/internal/engine"
	"github.com/simforge/tictactoe-sim/internal/entity"
)

// RecordSink - where finished games go and where history comes from. Both
// calls are fire-and-forget from the driver's point of view: errors are
// logged and never feed back into the simulation.
type RecordSink interface {
	SubmitBatch(ctx context.Context, records []entity.GameRecord) error
	FetchHistory(ctx context.Context) ([]entity.GameRecord, error)
}

type Config struct {
	MoveInterval   time.Duration
	MinInterval    time.Duration
	MaxInterval    time.Duration
	TerminalDelay  time.Duration
	FlushThreshold int
	HistoryPoll    time.Duration
}

type command interface{ isCommand() }

type (
	pauseCmd       struct{}
	speedCmd       struct{ interval time.Duration }
	refreshCmd     struct{}
	historyCmd     struct{ records []entity.GameRecord }
	subscribeCmd   struct{ ch chan Snapshot }
	unsubscribeCmd struct{ ch chan Snapshot }
)

func (pauseCmd) isCommand()       {}
func (speedCmd) isCommand()       {}
func (refreshCmd) isCommand()     {}
func (historyCmd) isCommand()     {}
func (subscribeCmd) isCommand()   {}
func (unsubscribeCmd) isCommand() {}

// Driver - owns the board, stats, batch buffer and history cache. All of them
// are mutated only inside Run's goroutine; everything else talks to the loop
// through the command channel.
type Driver struct {
	logger   *slog.Logger
	selector *engine.Selector
	sink     RecordSink
	conf     Config

	commands chan command

	game        *entity.Game
	stats       entity.Stats
	buffer      []entity.GameRecord
	history     []entity.GameRecord
	paused      bool
	observing   bool
	interval    time.Duration
	subscribers map[chan Snapshot]struct{}
}

func New(logger *slog.Logger, selector *engine.Selector, sink RecordSink, conf Config) *Driver {
	driver := &Driver{
		logger:   logger.With("component", "simulator"),
		selector: selector,
		sink:     sink,
		conf:     conf,

		commands:    make(chan command, 16),
		game:        entity.NewGame(),
		subscribers: make(map[chan Snapshot]struct{}),
	}
	driver.interval = driver.clampInterval(conf.MoveInterval)

	return driver
}

// Run - drives the simulation until the context is cancelled. One timer
// schedules both the move tick and the post-game reset; the tick always reads
// the loop's current state, so a speed or pause change can never replay
// against a stale board.
func (that *Driver) Run(ctx context.Context) {
	// keep late Subscribe/Unsubscribe callers from blocking during shutdown
	defer func() {
		go func() {
			for cmd := range that.commands {
				if sub, ok := cmd.(subscribeCmd); ok {
					close(sub.ch)
				}
			}
		}()
	}()

	timer := time.NewTimer(that.interval)
	defer timer.Stop()

	poll := time.NewTicker(that.conf.HistoryPoll)
	defer poll.Stop()

	that.fetchHistory(ctx)

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("simulation stopped", "games", that.stats.Games())
			return
		case <-timer.C:
			that.step(ctx)
			timer.Reset(that.nextDelay())
		case <-poll.C:
			that.fetchHistory(ctx)
		case cmd := <-that.commands:
			that.handleCommand(ctx, cmd)
		}

		that.broadcast()
	}
}

// TogglePause - gates only the move tick; a game sitting in its terminal
// delay still resets on schedule while paused.
func (that *Driver) TogglePause() {
	that.send(pauseCmd{})
}

// SetSpeed - takes effect when the next tick is armed, never retroactively.
func (that *Driver) SetSpeed(interval time.Duration) {
	that.send(speedCmd{interval: interval})
}

func (that *Driver) RefreshHistory() {
	that.send(refreshCmd{})
}

// Subscribe - registers a snapshot feed. Snapshots are dropped, not queued,
// when the subscriber falls behind.
func (that *Driver) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 8)
	that.commands <- subscribeCmd{ch: ch}

	return ch
}

func (that *Driver) Unsubscribe(ch chan Snapshot) {
	that.commands <- unsubscribeCmd{ch: ch}
}

// send - intents are droppable under pressure; the loop will pick up the next
// one.
func (that *Driver) send(cmd command) {
	select {
	case that.commands <- cmd:
	default:
		that.logger.Warn("command dropped, loop is busy")
	}
}

func (that *Driver) step(ctx context.Context) {
	if that.observing {
		that.resetGame()
		return
	}

	if that.paused {
		return
	}

	cell, ok := that.selector.SelectMove(that.game.Board, that.game.Turn)
	if !ok {
		// the terminal check below makes this unreachable; never crash on it
		that.logger.Warn("selector returned no move on a non-full board")
		return
	}

	if err := that.game.Apply(that.game.Turn, cell); err != nil {
		that.logger.Error("move rejected", "cell", cell, "error", err)
		return
	}

	if outcome, won := engine.Evaluate(that.game.Board); won {
		line := outcome.Line
		that.finishGame(ctx, outcome.Winner, &line)
		return
	}

	if that.game.Board.IsFull() {
		that.finishGame(ctx, entity.MarkTie, nil)
	}
}

func (that *Driver) finishGame(ctx context.Context, winner string, line *[3]int) {
	that.game.Finish(winner, line)
	that.stats.Count(winner)

	if len(that.game.Moves) > 0 {
		that.buffer = append(that.buffer, that.game.Record(time.Now()))
	}

	if len(that.buffer) >= that.conf.FlushThreshold {
		that.flush(ctx)
	}

	that.observing = true
}

func (that *Driver) resetGame() {
	that.game = entity.NewGame()
	that.observing = false
}

// flush - hands the batch to the sink and forgets it; a failed submit is
// logged and the records are not re-buffered.
func (that *Driver) flush(ctx context.Context) {
	batch := that.buffer
	that.buffer = nil

	go func() {
		if err := that.sink.SubmitBatch(ctx, batch); err != nil {
			that.logger.Error("failed to submit batch", "size", len(batch), "error", err)
			return
		}

		that.logger.Info("batch submitted", "size", len(batch))
	}()
}

// fetchHistory - asks the sink off the loop goroutine and posts the result
// back as a command. A failed fetch posts nil, which leaves the cache alone.
func (that *Driver) fetchHistory(ctx context.Context) {
	go func() {
		records, err := that.sink.FetchHistory(ctx)
		if err != nil {
			that.logger.Error("failed to fetch history", "error", err)
			records = nil
		}

		select {
		case that.commands <- historyCmd{records: records}:
		case <-ctx.Done():
		}
	}()
}

func (that *Driver) handleCommand(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case pauseCmd:
		that.paused = !that.paused
		that.logger.Info("pause toggled", "paused", that.paused)
	case speedCmd:
		that.interval = that.clampInterval(c.interval)
		that.logger.Info("speed changed", "interval", that.interval)
	case refreshCmd:
		that.fetchHistory(ctx)
	case historyCmd:
		if c.records != nil {
			that.history = c.records
		}
	case subscribeCmd:
		that.subscribers[c.ch] = struct{}{}
	case unsubscribeCmd:
		if _, ok := that.subscribers[c.ch]; ok {
			delete(that.subscribers, c.ch)
			close(c.ch)
		}
	}
}

func (that *Driver) nextDelay() time.Duration {
	if that.observing {
		return that.conf.TerminalDelay
	}
	return that.interval
}

func (that *Driver) clampInterval(interval time.Duration) time.Duration {
	if interval < that.conf.MinInterval {
		return that.conf.MinInterval
	}
	if interval > that.conf.MaxInterval {
		return that.conf.MaxInterval
	}
	return interval
}
