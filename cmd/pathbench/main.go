package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	pathlog "voxelpath.ai/internal/persistence/log"
	"voxelpath.ai/internal/persistence/rundb"
	"voxelpath.ai/internal/scenario"
	"voxelpath.ai/internal/sim/pathing"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/sim/world"
	"voxelpath.ai/internal/transport/debugws"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to scenario .json")
		configDir    = flag.String("configs", "./configs", "config directory")
		dbPath       = flag.String("db", "", "sqlite run index (optional)")
		logDir       = flag.String("log_dir", "", "calculation log dir (optional)")
		listen       = flag.String("listen", "", "debug websocket listen addr (optional)")
		verbose      = flag.Bool("v", false, "print every waypoint")
	)
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		os.Exit(2)
	}

	tun, err := tuning.Load(filepath.Join(*configDir, "pathing.yaml"))
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}

	catalog, err := loadCatalog(filepath.Join(*configDir, "blocks.yaml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load blocks:", err)
		os.Exit(1)
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load scenario:", err)
		os.Exit(1)
	}

	w, err := sc.BuildWorld(catalog)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build world:", err)
		os.Exit(1)
	}

	var index *rundb.RunIndex
	if *dbPath != "" {
		index, err = rundb.Open(*dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open rundb:", err)
			os.Exit(1)
		}
		defer index.Close()
	}

	var recorder *pathlog.JSONLZstdWriter
	if *logDir != "" {
		recorder = pathlog.NewJSONLZstdWriter(*logDir, "calc")
		defer recorder.Close()
	}

	var stream *debugws.Server
	if *listen != "" {
		stream = debugws.NewServer(log.Default())
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/paths", stream.Handler())
		go func() {
			if err := http.ListenAndServe(*listen, mux); err != nil {
				log.Printf("debugws: %v", err)
			}
		}()
		log.Printf("debug stream on ws://%s/debug/paths", *listen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registries := pathing.NewRegistries()
	failed := 0
	for i, jobSpec := range sc.Jobs {
		opts := tun.Options()
		if jobSpec.CanSwim != nil {
			opts.CanSwim = *jobSpec.CanSwim
		}
		if jobSpec.CanUseLadders != nil {
			opts.CanUseLadders = *jobSpec.CanUseLadders
		}
		if jobSpec.CanUseRails != nil {
			opts.CanUseRails = *jobSpec.CanUseRails
		}

		rng := jobSpec.Range
		if rng <= 0 {
			rng = tun.DefaultRange
		}

		start := world.Vec3i{X: jobSpec.Start[0], Y: jobSpec.Start[1], Z: jobSpec.Start[2]}
		end := world.Vec3i{X: jobSpec.End[0], Y: jobSpec.End[1], Z: jobSpec.End[2]}

		job, err := pathing.NewJob(w, start, end, rng, sc.WorldEntity(jobSpec.Start), pathing.JobConfig{
			Options:        opts,
			Registries:     registries,
			MaxNodes:       tun.MaxPathingNodes,
			MinRailsToPath: tun.MinimumRailsToPath,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "job %d: %v\n", i, err)
			failed++
			continue
		}

		began := time.Now()
		path := job.Call(ctx)
		elapsed := time.Since(began)

		if path == nil {
			fmt.Printf("job %d: %v -> %v: interrupted\n", i, start, end)
			failed++
			continue
		}

		fmt.Printf("job %d: %v -> %v: len=%d reaches=%v visited=%d in %s\n",
			i, start, end, path.Len(), path.ReachesDestination, job.TotalNodesVisited(), elapsed.Round(time.Microsecond))
		if *verbose {
			for k, wp := range path.Waypoints {
				fmt.Printf("  %3d %v ladder=%v rails=%v swim=%v\n", k, wp.Pos, wp.OnLadder, wp.OnRails, wp.Swimming)
			}
		}
		if !path.ReachesDestination {
			failed++
		}

		rec := pathlog.NewCalculationRecord(job, job.CalculationData(), elapsed)
		if recorder != nil {
			if err := recorder.Write(rec); err != nil {
				log.Printf("calc log: %v", err)
			}
		}
		if index != nil {
			index.Record(rec)
		}
		if stream != nil {
			stream.Broadcast(rec)
		}
	}

	if failed > 0 {
		fmt.Printf("%s: %d/%d jobs did not reach their destination\n", sc.Name, failed, len(sc.Jobs))
		os.Exit(1)
	}
	fmt.Printf("%s: all %d jobs ok\n", sc.Name, len(sc.Jobs))
}

func loadCatalog(path string) (*world.BlockCatalog, error) {
	c, err := world.LoadBlockCatalog(path)
	if os.IsNotExist(err) {
		return world.DefaultBlockCatalog(), nil
	}
	return c, err
}
