package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"travelmate/internal/analytics"
	"travelmate/internal/api"
	"travelmate/internal/cmdlog"
	"travelmate/internal/config"
	"travelmate/internal/demo"
	"travelmate/internal/directory"
	"travelmate/internal/impressions"
	"travelmate/internal/jobs"
	"travelmate/internal/logging"
	"travelmate/internal/metrics"
	"travelmate/internal/recommend"
	"travelmate/internal/store/sqlitestore"
	"travelmate/internal/theme"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "seed":
		cmdSeed()
	case "serve":
		cmdServe()
	case "recommend":
		cmdRecommend()
	case "stats":
		cmdStats()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: travelmate <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./travelmate.yaml")
	fmt.Println("  seed        Load the demo community into the database")
	fmt.Println("  serve       Run the recommendation HTTP API")
	fmt.Println("  recommend   Print recommendations for a user")
	fmt.Println("  stats       Show hourly impression analytics")
}

func fatal(err error) {
	fmt.Println("error:", err)
	os.Exit(1)
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./travelmate.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	err := cmdlog.Run("init", func() error {
		return config.Save(*path, config.Default())
	})
	if err != nil {
		fatal(err)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	cfgPath := fs.String("config", "./travelmate.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	cfg := loadConfig(*cfgPath)
	err := cmdlog.Run("seed", func() error {
		db, err := sqlitestore.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		snap := demo.Snapshot(time.Now().UTC())
		if err := db.SaveSnapshot(context.Background(), snap); err != nil {
			return err
		}
		fmt.Printf("Seeded %d users and %d posts into %s\n", len(snap.Users()), len(snap.Posts()), cfg.Storage.DBPath)
		return nil
	})
	if err != nil {
		fatal(err)
	}
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "./travelmate.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	cfg := loadConfig(*cfgPath)
	theme.PrintBanner()

	db, err := sqlitestore.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		fatal(err)
	}
	provider := directory.NewProvider(snap)

	people, posts, err := buildStores(ctx, db)
	if err != nil {
		fatal(err)
	}
	rec := recommend.New(provider, people, posts, cfg.Recommend.HighSignalLanguages)

	var cache *api.Cache
	if cfg.Redis.Addr != "" {
		cache, err = api.NewCache(cfg.Redis)
		if err != nil {
			logging.Warn("redis_unavailable", map[string]any{"error": err.Error()})
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	metrics.StartServer(cfg.Metrics.Addr)

	h := api.NewHandler(rec, db, cache, cfg.Recommend.PeopleLimit, cfg.Recommend.PostLimit)
	rl := api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	app := api.NewApp(h, rl)

	if cfg.Storage.RefreshIntervalSeconds > 0 {
		interval := time.Duration(cfg.Storage.RefreshIntervalSeconds) * time.Second
		go jobs.RunSnapshotRefresh(ctx, db, provider, interval)
	}

	go func() {
		logging.Info("serve_start", map[string]any{"addr": cfg.Server.Addr})
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logging.Error("serve_error", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	logging.Info("serve_shutdown", nil)
	_ = app.Shutdown()
}

func cmdRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	cfgPath := fs.String("config", "./travelmate.yaml", "config path")
	userID := fs.String("user", "", "viewer user id")
	kind := fs.String("kind", "people", "people or posts")
	limit := fs.Int("limit", 0, "max results (0 uses config default)")
	debug := fs.Bool("debug", false, "include raw scores")
	record := fs.Bool("record", false, "record impressions for returned results")
	_ = fs.Parse(os.Args[2:])
	if *userID == "" {
		fmt.Println("error: -user is required")
		os.Exit(1)
	}
	cfg := loadConfig(*cfgPath)
	err := cmdlog.Run("recommend", func() error {
		db, err := sqlitestore.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		ctx := context.Background()
		snap, err := db.LoadSnapshot(ctx)
		if err != nil {
			return err
		}
		people, posts, err := buildStores(ctx, db)
		if err != nil {
			return err
		}
		rec := recommend.New(directory.Static{Snap: snap}, people, posts, cfg.Recommend.HighSignalLanguages)
		switch *kind {
		case "people":
			n := *limit
			if n <= 0 {
				n = cfg.Recommend.PeopleLimit
			}
			results := rec.RecommendPeople(*userID, n, *debug, *record)
			for i, r := range results {
				line := fmt.Sprintf("%2d. %s %v mutuals=%d", i+1, r.DisplayName, r.Tags, r.MutualFriendsCount)
				if r.DebugScore != nil {
					line += fmt.Sprintf(" score=%.4f", *r.DebugScore)
				}
				fmt.Println(line)
			}
			fmt.Printf("%d people\n", len(results))
		case "posts":
			n := *limit
			if n <= 0 {
				n = cfg.Recommend.PostLimit
			}
			results := rec.RecommendPosts(*userID, n, *debug, *record)
			for i, r := range results {
				line := fmt.Sprintf("%2d. [%s] %s likes=%d", i+1, r.AuthorName, r.CoarseLocation, r.LikedByFriendsCount)
				if r.DebugScore != nil {
					line += fmt.Sprintf(" score=%.4f", *r.DebugScore)
				}
				fmt.Println(line)
			}
			fmt.Printf("%d posts\n", len(results))
		default:
			return fmt.Errorf("unknown kind %q", *kind)
		}
		return nil
	})
	if err != nil {
		fatal(err)
	}
}

func cmdStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cfgPath := fs.String("config", "./travelmate.yaml", "config path")
	kind := fs.String("kind", "people", "people or posts")
	days := fs.Int("days", 7, "lookback window in days")
	top := fs.Int("top", 10, "top candidates to list")
	_ = fs.Parse(os.Args[2:])
	cfg := loadConfig(*cfgPath)
	err := cmdlog.Run("stats", func() error {
		db, err := sqlitestore.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		end := time.Now().UTC()
		start := end.AddDate(0, 0, -*days)
		events, err := db.LoadImpressionEvents(context.Background(), *kind, start, end)
		if err != nil {
			return err
		}
		buckets := analytics.HourlyImpressions(events)
		for _, hour := range analytics.SortedBucketKeys(buckets) {
			fmt.Printf("%s  %s=%d\n", hour.Format("2006-01-02 15:00"), *kind, buckets[hour][*kind])
		}
		fmt.Println("Top candidates:")
		for _, id := range analytics.TopCandidates(events, *top) {
			fmt.Println("  ", id)
		}
		fmt.Printf("%d impressions over %d days\n", len(events), *days)
		return nil
	})
	if err != nil {
		fatal(err)
	}
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default()
		}
		fatal(err)
	}
	return cfg
}

func buildStores(ctx context.Context, db *sqlitestore.DB) (people, posts *impressions.Store, err error) {
	people = impressions.NewWithJournal(db.ImpressionJournal("people"))
	posts = impressions.NewWithJournal(db.ImpressionJournal("posts"))
	if err := db.WarmStore(ctx, "people", people, 50); err != nil {
		return nil, nil, err
	}
	if err := db.WarmStore(ctx, "posts", posts, 50); err != nil {
		return nil, nil, err
	}
	return people, posts, nil
}
