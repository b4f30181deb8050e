package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/xtdb-contrib/pgwire-adapter/internal/engine"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/logger"

	// Import store adapters to trigger their init() registration
	_ "github.com/xtdb-contrib/pgwire-adapter/internal/database/xtdb"
)

const serviceVersion = "1.0.0"

var (
	configPath  = flag.String("config", "", "Path to a yaml connection config file")
	storeType   = flag.String("store", "xtdb", "Registered store type")
	host        = flag.String("host", "localhost", "Store host")
	port        = flag.Int("port", 5432, "Store port (PostgreSQL wire protocol)")
	database    = flag.String("database", "xtdb", "Database name")
	username    = flag.String("username", "xtdb", "Username")
	password    = flag.String("password", "", "Password")
	command     = flag.String("command", "ping", "Command to run: ping | tables | version | flush | create-db | drop-db")
	flushTables = flag.String("tables", "", "Comma-separated table list for flush")
)

func loadConfig() (adapter.ConnectionConfig, error) {
	config := adapter.ConnectionConfig{
		ConnectionType: *storeType,
		Host:           *host,
		Port:           *port,
		Username:       *username,
		Password:       *password,
		DatabaseName:   *database,
	}

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			return config, err
		}
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return config, err
		}
	}

	return config, nil
}

func run(ctx context.Context, sess *engine.Session) error {
	switch *command {
	case "ping":
		if err := sess.Connection().Ping(ctx); err != nil {
			return err
		}
		fmt.Println("ok")
	case "tables":
		tables, err := sess.ListTables(ctx)
		if err != nil {
			return err
		}
		for _, t := range tables {
			fmt.Printf("%s\t%s\n", t.Name, t.Type)
		}
	case "version":
		version, err := sess.Connection().MetadataOperations().GetVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
	case "flush":
		var tables []string
		for _, t := range strings.Split(*flushTables, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
		if len(tables) == 0 {
			return fmt.Errorf("flush requires -tables")
		}
		return sess.Flush(ctx, tables)
	case "create-db":
		return sess.Connection().EnsureDatabase(ctx, *database, nil)
	case "drop-db":
		return sess.Connection().DropDatabase(ctx, *database, nil)
	default:
		return fmt.Errorf("unknown command %q", *command)
	}
	return nil
}

func main() {
	flag.Parse()

	log := logger.New("pgwire-adapter", serviceVersion)

	// Create context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration: %v", err)
	}

	eng := engine.New(log)
	defer eng.CloseAll()

	sess, err := eng.Open(ctx, config)
	if err != nil {
		log.Fatal("failed to open session: %v", err)
	}

	if err := run(ctx, sess); err != nil {
		log.Fatal("%s failed: %v", *command, err)
	}
}
