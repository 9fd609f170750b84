package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simforge/tictactoe-sim/internal/config"
	"github.com/simforge/tictactoe-sim/internal/engine"
	"github.com/simforge/tictactoe-sim/internal/repository"
	"github.com/simforge/tictactoe-sim/internal/repository/storage"
	"github.com/simforge/tictactoe-sim/internal/simulator"
	"github.com/simforge/tictactoe-sim/internal/sink"
	"github.com/simforge/tictactoe-sim/transport/rest"
	"github.com/simforge/tictactoe-sim/transport/websocket"
)

// RunApp - wires the record store, the simulator and the live view together
// and runs them until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	recordRepo := repository.NewRecordRepository(redisStorage.Connection)

	// record store API
	restErrCh := make(chan error, 1)
	go func() {
		log.Info("starting record store", "port", conf.HTTPPort)
		restServer := rest.New(logger, recordRepo, conf.Simulation.HistoryPageSize)
		if restErr := restServer.Start(ctx, conf.HTTPPort); restErr != nil {
			restErrCh <- restErr
		}
	}()

	// the simulator reaches the store the same way any remote client would
	recordSink := sink.NewHTTPSink(conf.Sink.BaseURL, conf.Sink.GetTimeout())
	selector := engine.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // not crypto

	driver := simulator.New(logger, selector, recordSink, simulator.Config{
		MoveInterval:   conf.Simulation.GetMoveInterval(),
		MinInterval:    conf.Simulation.GetMinInterval(),
		MaxInterval:    conf.Simulation.GetMaxInterval(),
		TerminalDelay:  conf.Simulation.GetTerminalDelay(),
		FlushThreshold: conf.Simulation.FlushThreshold,
		HistoryPoll:    conf.Simulation.GetHistoryPoll(),
	})
	go driver.Run(ctx)

	// live view
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("starting live view", "port", conf.SocketPort)
		wsServer := websocket.New(logger, driver)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-restErrCh:
		return fmt.Errorf("record store error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("live view error: %w", err)
	case <-ctx.Done():
		log.Info("application context canceled, shutting down")
		return nil
	}
}
