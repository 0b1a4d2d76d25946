package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexandre-normand/votescot"
	"github.com/alexandre-normand/votescot/brain"
	"github.com/alexandre-normand/votescot/config"
	"github.com/alexandre-normand/votescot/librarian"
	"github.com/alexandre-normand/votescot/store"
	"github.com/alexandre-normand/votescot/store/datastoredb"
	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/api/global"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	name    = "votescot"
	version = "1.0.0"
)

var (
	configurationPath = kingpin.Flag("configuration", "The path to the configuration file.").Required().String()
	logfile           = kingpin.Flag("log", "The path to the log file (logs to stdout when unset).").OpenFile(os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
)

func main() {
	kingpin.Version(version)
	kingpin.Parse()

	v := config.NewViperWithDefaults()
	v.SetConfigFile(*configurationPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error loading configuration file [%s]: %v", *configurationPath, err)
	}

	output := os.Stdout
	if *logfile != nil {
		output = *logfile
	}
	logger := votescot.NewSLogger(log.New(output, name+": ", log.Lshortfile|log.LstdFlags), v.GetBool(config.DebugKey))

	b, err := newBrain(v)
	if err != nil {
		log.Fatalf("Error opening brain: %v", err)
	}
	defer b.Close()

	gateway := votescot.NewSlackGateway(slack.New(v.GetString(config.TokenKey)))
	instrumentedGateway := votescot.NewGatewayWithTelemetry(gateway, name, global.Meter(name))

	searcher, err := newLibrarian(v, logger)
	if err != nil {
		log.Fatalf("Error creating librarian: %v", err)
	}

	dispatcher := votescot.NewDispatcher(b, instrumentedGateway, searcher, logger)

	bot := votescot.New(name, v, dispatcher, logger)
	if err := bot.Run(); err != nil {
		log.Fatal(err)
	}
}

// newBrain opens the persistence backend selected by configuration
func newBrain(v *viper.Viper) (b brain.Brain, err error) {
	backend := v.GetString(config.BrainKey)

	switch backend {
	case "leveldb":
		storer, err := store.NewLevelDB(name, v.GetString(config.StoragePathKey))
		if err != nil {
			return nil, err
		}

		return brain.New(storer), nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: v.GetString(config.RedisAddressKey)})
		return brain.NewRedis(client), nil

	case "datastore":
		storer, err := datastoredb.New(name, v.GetString(config.GCloudProjectIDKey))
		if err != nil {
			return nil, err
		}

		return brain.New(storer), nil

	default:
		return nil, fmt.Errorf("unsupported brain backend [%s]", backend)
	}
}

// newLibrarian assembles the library search providers
func newLibrarian(v *viper.Viper, logger votescot.SLogger) (l *librarian.Librarian, err error) {
	apiKey := v.GetString(config.LibrariesIOAPIKeyKey)

	iosProvider, err := librarian.NewLibrariesIOProvider("ios", apiKey)
	if err != nil {
		return nil, err
	}

	androidProvider, err := librarian.NewLibrariesIOProvider("android", apiKey)
	if err != nil {
		return nil, err
	}

	return librarian.New(logger, v.GetInt(config.LibrarianCacheSizeKey), iosProvider, androidProvider)
}
