// Command strikeengine is the headless scenario runner: it loads a scenario
// and its entity profiles, builds the engagement, and ticks the engine at
// the scenario's fixed timestep until the engagement concludes or the
// configured duration elapses.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/engine"
	"github.com/strikeengine/strikeengine/internal/factory"
	"github.com/strikeengine/strikeengine/internal/systems/endgame"
	"github.com/strikeengine/strikeengine/internal/systems/ew"
	"github.com/strikeengine/strikeengine/internal/systems/gnc"
	"github.com/strikeengine/strikeengine/internal/systems/physics"
)

const (
	exitSuccess             = 0
	exitScenarioLoadFailure = 1
	exitConfigLoadFailure   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("strikeengine", flag.ContinueOnError)
	atmospherePath := fs.String("atmosphere", "", "path to packed binary atmosphere table (default: <scenario-dir>/atmosphere.bin)")
	dataDir := fs.String("data-dir", "", "base directory for aero/RCS/IR profile lookups (default: <scenario-dir>)")
	workers := fs.Int("workers", 0, "job pool worker count (0 = GOMAXPROCS)")
	seed := fs.Int64("seed", 1, "base RNG seed for per-entity IMU/GPS noise")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return exitScenarioLoadFailure
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: strikeengine <scenario-path>")
		return exitScenarioLoadFailure
	}
	scenarioPath := fs.Arg(0)

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	scenarioDir := filepath.Dir(scenarioPath)
	if *dataDir == "" {
		*dataDir = scenarioDir
	}
	if *atmospherePath == "" {
		*atmospherePath = filepath.Join(scenarioDir, "atmosphere.bin")
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-stopCh; ok {
			logger.Warn("strikeengine: interrupted, stopping early")
			os.Exit(130)
		}
	}()

	scenario, err := factory.LoadScenario(scenarioPath)
	if err != nil {
		logger.Error("strikeengine: failed to load scenario", "error", err)
		return exitScenarioLoadFailure
	}
	dt, err := scenario.DtSeconds()
	if err != nil {
		logger.Error("strikeengine: invalid scenario timestep", "error", err)
		return exitScenarioLoadFailure
	}

	atmosphere, err := dataservice.LoadAtmosphereTable(*atmospherePath)
	if err != nil {
		logger.Error("strikeengine: failed to load atmosphere table", "error", err)
		return exitConfigLoadFailure
	}
	aeroDB := dataservice.NewAeroDatabase(*dataDir)
	rcsDB := dataservice.NewRCSDatabase(*dataDir)
	irDB := dataservice.NewIRDatabase(*dataDir)

	builder := engine.NewBuilder()
	builder.Logger(logger)
	builder.Workers(*workers)

	// Gravity and Propulsion both write ForceAccumulator for any powered
	// entity; Propulsion is serialized after Gravity to avoid a
	// write-after-write race on the shared accumulator.
	builder.System(physics.NewGravity())
	builder.System(physics.NewPropulsion(atmosphere), "Gravity")
	// EW sums jammer noise into Antenna.NoiseFloorW before Sensor reads it
	// for the radar SNR calculation.
	builder.System(ew.NewElectronicWarfare())
	builder.System(gnc.NewSensor(rcsDB, irDB), "ElectronicWarfare")
	// Navigation reads ForceAccumulator for IMU ground-truth acceleration,
	// so it must run after Gravity/Propulsion have added their
	// contributions for this tick. It cannot also depend on Aerodynamics:
	// Guidance depends on Navigation and Aerodynamics depends on Control
	// (which depends on Guidance), so a Navigation→Aerodynamics edge would
	// close a cycle. Navigation's ground-truth acceleration therefore
	// excludes the aerodynamic force: Aerodynamics adds it after Navigation
	// has run, and Integration clears the accumulator at the end of the tick.
	builder.System(gnc.NewNavigation(*seed), "Gravity", "Propulsion")
	builder.System(gnc.NewGuidance(), "Sensor", "Navigation")
	builder.System(gnc.NewControl(atmosphere), "Guidance")
	// Aerodynamics consumes the control surface deflections Control just
	// computed (the canonical Control→Aerodynamics edge).
	builder.System(physics.NewAerodynamics(atmosphere, aeroDB), "Gravity", "Propulsion", "Control")
	builder.System(physics.NewIntegration(), "Aerodynamics", "Control")
	builder.System(endgame.NewEndgame(), "Integration")

	reg := builder.Registry()
	f := factory.NewEntityFactory(reg, scenarioDir)
	shooter, target, err := f.BuildScenario(scenario, scenarioDir)
	if err != nil {
		logger.Error("strikeengine: failed to build scenario entities", "error", err)
		return exitScenarioLoadFailure
	}

	eng, err := builder.Build()
	if err != nil {
		logger.Error("strikeengine: failed to build engine", "error", err)
		return exitConfigLoadFailure
	}
	defer eng.Close()

	eng.WatchEngagement(shooter, target)

	logger.Info("strikeengine: starting run",
		"run_id", eng.RunID,
		"duration_s", scenario.Simulation.DurationS,
		"dt_s", dt,
	)
	eng.Run(scenario.Simulation.DurationS, dt)
	logger.Info("strikeengine: run complete", "sim_time_s", eng.SimTimeS())

	return exitSuccess
}
