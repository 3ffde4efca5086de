package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/api"
	"github.com/bitmark-inc/safecare-api/audit"
	"github.com/bitmark-inc/safecare-api/background"
	"github.com/bitmark-inc/safecare-api/external/gemini"
	"github.com/bitmark-inc/safecare-api/geo"
	"github.com/bitmark-inc/safecare-api/ratelimit"
	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/store"
	"github.com/bitmark-inc/safecare-api/utils"
)

var (
	server *api.Server
	pins   store.Pins
)

// initialization holds the cancel func of the startup context until the
// server is ready. It is shared with the signal handler.
type initialization struct {
	sync.Mutex
	cancel context.CancelFunc
}

func newInitialization(cancel context.CancelFunc) *initialization {
	return &initialization{cancel: cancel}
}

// Cancel aborts a pending startup. It reports false once Finish was called.
func (i *initialization) Cancel() bool {
	i.Lock()
	defer i.Unlock()

	if i.cancel == nil {
		return false
	}
	i.cancel()
	i.cancel = nil
	return true
}

// Finish marks startup as done, later signals no longer touch its context
func (i *initialization) Finish() {
	i.Lock()
	defer i.Unlock()
	i.cancel = nil
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.database", "safecare")
	viper.SetDefault("llm.models", gemini.DefaultModels)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("maps.search_radius", 15000)
	viper.SetDefault("maps.max_results", 5)
	viper.SetDefault("ratelimit.window", ratelimit.DefaultWindow)
	viper.SetDefault("ratelimit.max", ratelimit.DefaultMax)
	viper.SetDefault("ratelimit.sweep_interval", 5*time.Minute)

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("safecare")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// initPinStore connects mongodb when configured, otherwise pins are kept in
// process memory
func initPinStore(ctx context.Context) store.Pins {
	conn := viper.GetString("mongo.conn")
	if conn == "" {
		log.WithField("prefix", "init").Warn("mongo.conn is empty, community pins are kept in memory")
		return store.NewMemoryPins()
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(conn)
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(ctx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	dbName := viper.GetString("mongo.database")
	if err := schema.NewMongoDBIndexer(mongoClient, dbName).IndexAll(); err != nil {
		log.Panicf("create mongo indexes with error: %s", err)
	}

	return store.NewMongoPins(mongoClient, dbName)
}

// initChain builds the model fallback chain. Without an API key the chain is
// empty and endpoints use their documented degraded behavior.
func initChain(ctx context.Context) *agent.Chain {
	apiKey := gemini.LookupAPIKey(viper.GetString("llm.apikey"))
	if apiKey == "" {
		log.WithField("prefix", "init").Warn("no language model API key configured")
		return agent.NewChain()
	}

	generators, err := gemini.New(ctx, apiKey, viper.GetStringSlice("llm.models"), viper.GetDuration("llm.timeout"))
	if err != nil {
		log.Panicf("create language model client with error: %s", err)
	}

	chain := agent.NewChain(generators...)
	log.WithField("prefix", "init").Infof("Initialized language models: %s", strings.Join(chain.Models(), ", "))
	return chain
}

// initFinder prefers the places API and falls back to asking the model
func initFinder(chain *agent.Chain) *geo.MultipleFacilityFinder {
	var finders []geo.FacilityFinder

	if key := viper.GetString("maps.apikey"); key != "" {
		client, err := geo.NewPlacesClient(key)
		if err != nil {
			log.Panicf("create maps client with error: %s", err)
		}
		finders = append(finders, geo.NewPlacesFacilityFinder(client,
			viper.GetUint("maps.search_radius"), viper.GetInt("maps.max_results")))
	}

	if chain.Configured() {
		finders = append(finders, geo.NewAgentFacilityFinder(chain))
	}

	return geo.NewMultipleFacilityFinder(finders...)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	initializing := newInitialization(cancelInitialization)
	backgroundCtx, cancelBackground := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initializing.Cancel() {
			log.Info("Cancelled initialization")
		}

		cancelBackground()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if pins != nil {
			log.Info("Shutting down pin store")
			pins.Close()
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded i18n messages")

	pins = initPinStore(initialCtx)
	log.WithField("prefix", "init").Info("Initialized pin store")

	chain := initChain(initialCtx)
	finder := initFinder(chain)

	limiter := ratelimit.New(store.NewMemoryRateLimitRecords(),
		viper.GetDuration("ratelimit.window"), viper.GetInt("ratelimit.max"))

	manager := background.New()
	if err := manager.RegisterJob("ratelimit-sweep", viper.GetDuration("ratelimit.sweep_interval"), func(ctx context.Context) error {
		removed, err := limiter.Sweep(ctx)
		if err != nil {
			return err
		}
		log.WithField("prefix", "background").Debugf("removed %d expired rate limit records", removed)
		return nil
	}); err != nil {
		log.Panic(err)
	}
	if err := manager.Run(backgroundCtx); err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Started background jobs")

	recorder := audit.NewRecorder(utils.Disclaimer(utils.NewLocalizer("en")))

	// Init http server
	server = api.NewServer(pins, limiter, chain, finder, recorder)
	log.WithField("prefix", "init").Info("Initialized http server")

	initializing.Finish()

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
