package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/agent/nonlinear/discrete/deepq"
	"github.com/samuelfneumann/gamelearn/environment/envconfig"
	"github.com/samuelfneumann/gamelearn/experiment"
	"github.com/samuelfneumann/gamelearn/experiment/checkpointer"
	"github.com/samuelfneumann/gamelearn/experiment/plot"
	"github.com/samuelfneumann/gamelearn/experiment/store"
	"github.com/samuelfneumann/gamelearn/solver"
	"github.com/samuelfneumann/gamelearn/spec"
)

var (
	configFile = flag.String("config", "", "JSON file describing the experiment")
	outDir     = flag.String("out", "logs", "directory to write the logs of the experiment to")
	restore    = flag.String("restore", "", "checkpoint to restore the agent's parameters from")
	colors     = flag.Bool("colors", true, "colour the console output")
)

// Config describes a complete training run of a DeepQ agent on a game
type Config struct {
	Game       envconfig.Config       `json:"game"`
	Seed       uint64                 `json:"seed"`
	Experiment experiment.Config      `json:"experiment"`
	Parameters map[string]interface{} `json:"parameters"`
	QNetwork   deepq.NetworkConfig    `json:"q_network"`
	Optimizer  *solver.Solver         `json:"optimizer"`

	// Episodes between checkpoints of the agent's parameters, 0
	// disables checkpointing
	CheckpointEvery int `json:"checkpoint_every"`
}

func loadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not decode %v",
			filename)
	}
	if c.Optimizer == nil {
		return Config{}, errors.New("loadConfig: missing optimizer")
	}
	return c, nil
}

// run trains a DeepQ agent as described by c. Logs are written to a
// new directory in dir, which is returned.
func run(c Config, dir, restoreFrom string, console io.Writer,
	colors bool) (string, error) {
	params, err := spec.DQNFromMap(c.Parameters)
	if err != nil {
		return "", errors.Wrap(err, "run")
	}
	expConfig := c.Experiment
	if expConfig.TestEvery > 0 && expConfig.TestSize == 0 {
		expConfig.TestSize = params.TestSize
	}

	game, err := c.Game.Create()
	if err != nil {
		return "", errors.Wrap(err, "run")
	}

	rng := rand.New(rand.NewSource(c.Seed))
	losses := experiment.NewLosses()
	q, err := deepq.NewMLP(deepq.ConfigFromSpec(params), c.QNetwork,
		c.Optimizer, game.Features(), game.NumActions(), rng, losses)
	if err != nil {
		return "", errors.Wrap(err, "run")
	}

	if restoreFrom != "" {
		restored, err := checkpointer.Load(restoreFrom)
		if err != nil {
			return "", errors.Wrap(err, "run")
		}
		if err := q.SetParameters(restored); err != nil {
			return "", errors.Wrap(err, "run")
		}
		log.Infof("restored parameters from %v", restoreFrom)
	}

	logDir := filepath.Join(dir, string(c.Game.Environment), "dqn",
		"logs_"+time.Now().Format("2006-01-02_15-04-05.000"))
	if _, err := experiment.WriteMetadata(logDir, experiment.Metadata{
		ModelName:  "DQN",
		Game:       string(c.Game.Environment),
		QNetwork:   c.QNetwork,
		Parameters: params.Map(),
		Optimizer:  c.Optimizer,
	}); err != nil {
		return "", errors.Wrap(err, "run")
	}

	db, err := store.NewSQLite(filepath.Join(logDir, "episodes.db"))
	if err != nil {
		return "", errors.Wrap(err, "run")
	}

	sinks := []experiment.Sink{
		experiment.NewConsole(console, time.Second, colors),
		losses,
		db,
		plot.NewChart(filepath.Join(logDir, "curves.html"), c.Game.String()),
	}
	if c.CheckpointEvery > 0 {
		check, err := checkpointer.NewNEpisode(c.CheckpointEvery, q,
			checkpointer.FilenameEnumerator(0, filepath.Join(logDir,
				"checkpoints", "q"), ".bin"))
		if err != nil {
			db.Close()
			return "", errors.Wrap(err, "run")
		}
		sinks = append(sinks, check)
	}

	exp, err := experiment.NewOnline(game, q, expConfig, rng, sinks...)
	if err != nil {
		db.Close()
		return "", errors.Wrap(err, "run")
	}
	log.Infof("training %v on %v for %d episodes, logging to %v", params,
		c.Game, expConfig.MaxEpisodes, logDir)

	runErr := exp.Run()
	if best, ok, err := db.BestScore(); err == nil && ok {
		log.Infof("best score %v after %d episodes, %d updates and %d "+
			"target synchronizations", best, exp.Episodes(), losses.Updates(),
			losses.Syncs())
	}
	closeErr := exp.Close()

	if runErr != nil {
		return logDir, errors.Wrap(runErr, "run")
	}
	return logDir, errors.Wrap(closeErr, "run")
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer log.Flush()

	if *configFile == "" {
		log.Fatal("missing -config")
	}

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	logDir, err := run(config, *outDir, *restore, os.Stdout, *colors)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Infof("done, logs written to %v", logDir)
}
