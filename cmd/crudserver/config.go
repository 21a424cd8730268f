package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by -backend / CRUD_BACKEND
const (
	backendMemory   = "memory"
	backendGorm     = "gorm"
	backendDynamoDB = "dynamodb"
)

type config struct {
	Addr    string
	Backend string
	Schemas string

	DBDriver string
	DBDSN    string
	Migrate  bool

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	DDBEndpoint  string
	DDBTable     string

	ShowVersion bool
}

// loadConfig reads .env when present, then the environment, then flags.
// Flags win over the environment.
func loadConfig(args []string) (config, error) {
	_ = godotenv.Load()

	var cfg config
	fs := flag.NewFlagSet("crudserver", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "addr", env("CRUD_ADDR", ":8080"), "HTTP listen address")
	fs.StringVar(&cfg.Backend, "backend", env("CRUD_BACKEND", backendMemory), "datastore backend: memory, gorm or dynamodb")
	fs.StringVar(&cfg.Schemas, "schemas", env("CRUD_SCHEMAS", ""), "YAML file with entity schemas")

	fs.StringVar(&cfg.DBDriver, "db-driver", env("CRUD_DB_DRIVER", "sqlite"), "gorm driver: sqlite, postgres or mysql")
	fs.StringVar(&cfg.DBDSN, "db-dsn", env("CRUD_DB_DSN", "entitycrud.db"), "gorm data source name")
	fs.BoolVar(&cfg.Migrate, "migrate", envBool("CRUD_DB_MIGRATE", true), "create or update tables on start")

	fs.StringVar(&cfg.AWSRegion, "aws-region", env("AWS_REGION", "us-east-1"), "AWS region")
	fs.StringVar(&cfg.DDBEndpoint, "ddb-endpoint", env("AWS_DDB_ENDPOINT", ""), "DynamoDB endpoint override")
	fs.StringVar(&cfg.DDBTable, "ddb-table", env("AWS_DDB_TABLE", "rating_systems"), "DynamoDB table")
	cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY")
	cfg.AWSSecretKey = os.Getenv("AWS_SECRET_KEY")

	var vFlag bool
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&vFlag, "v", false, "Show version information (short)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg.ShowVersion = cfg.ShowVersion || vFlag
	return cfg, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
