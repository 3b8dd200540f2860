package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/critic/internal/app"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	serve      = kingpin.Flag("serve", "run the trigger server instead of a one-shot review").Bool()
	verbose    = kingpin.Flag("verbose", "enable debug logging").Short('v').Bool()
)

func main() {
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	if *verbose {
		cfg.Review.Verbose = true
	}

	level := logze.LevelInfo
	if cfg.Review.Verbose {
		level = logze.LevelDebug
	}
	logze.Init(logze.C().WithConsole().WithLevel(level))

	critic, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "create service")
	}

	if *serve {
		if err := critic.StartServer(ctx); err != nil {
			return erro.Wrap(err, "start server")
		}
		<-ctx.Done()
		return nil
	}

	if err := critic.RunReview(ctx); err != nil {
		return erro.Wrap(err, "run review")
	}

	return nil
}
