package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/analysis"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/desert"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/scenario"
	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario YAML file (defaults embedded if omitted)")
	outDir := flag.String("out", "", "run output directory for telemetry.csv and scenario.yaml (disabled if empty)")
	steps := flag.Int("steps", 500, "number of epochs to simulate")
	sampleEvery := flag.Int("sample-every", 10, "epochs between telemetry samples")
	flag.Parse()

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("loading scenario: %v", err)
	}

	sim, err := desert.New(sc.ToConfig())
	if err != nil {
		log.Fatalf("constructing simulation: %v", err)
	}

	out, err := telemetry.NewOutputManager(*outDir)
	if err != nil {
		log.Fatalf("opening output directory: %v", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("closing telemetry: %v", err)
		}
	}()

	if *outDir != "" {
		if err := sc.WriteYAML(filepath.Join(*outDir, "scenario.yaml")); err != nil {
			log.Printf("writing scenario snapshot: %v", err)
		}
	}

	log.Printf("simulating %dx%d grid for %d epochs (workers=%d)", sim.NX(), sim.NY(), *steps, sc.Params.WorkerCount)

	start := time.Now()
	for epoch := 1; epoch <= *steps; epoch++ {
		sim.Step()

		if *sampleEvery > 0 && epoch%*sampleEvery == 0 {
			summary := analysis.Summarize(sim)
			wavelength := analysis.DominantWavelength(analysis.RowHeights(sim, sim.NY()/2))

			stats := telemetry.EpochStats{
				Epoch:              int64(sim.StepCount()),
				TotalSediment:      summary.TotalSediment,
				TotalBedrock:       summary.TotalBedrock,
				MinHeight:          summary.MinHeight,
				MaxHeight:          summary.MaxHeight,
				MeanHeight:         summary.MeanHeight,
				DominantWavelength: wavelength,
			}
			if err := out.WriteEpoch(stats); err != nil {
				log.Printf("writing telemetry: %v", err)
			}
		}
	}

	log.Printf("finished %d epochs in %s", *steps, time.Since(start).Round(time.Millisecond))
}
