package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/go-kratos/kratos/v2/encoding"
	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/suparena/entitycrud"
	"github.com/suparena/entitycrud/controller"
	"github.com/suparena/entitycrud/datastore"
	"github.com/suparena/entitycrud/datastore/ddb"
	"github.com/suparena/entitycrud/datastore/gormstore"
	"github.com/suparena/entitycrud/datastore/mock"
	"github.com/suparena/entitycrud/datastore/testmodels"
	"github.com/suparena/entitycrud/registry"
	"github.com/suparena/entitycrud/storagemodels"
)

type RatingSystem = testmodels.RatingSystem

// entityTypes lists the types schema files may describe.
var entityTypes = map[string]reflect.Type{
	"RatingSystem": reflect.TypeFor[RatingSystem](),
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if cfg.ShowVersion {
		info := entitycrud.GetVersionInfo()
		fmt.Printf("EntityCRUD crudserver version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	log.SetLogger(logger)
	helper := log.NewHelper(log.With(logger, "module", "crudserver"))

	if err := run(cfg, logger, helper); err != nil {
		helper.Errorf("crudserver stopped: %v", err)
		os.Exit(1)
	}
}

func run(cfg config, logger log.Logger, helper *log.Helper) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Schemas != "" {
		if err := loadSchemas(cfg.Schemas, helper); err != nil {
			return err
		}
	}

	store, fallback, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var opts []entitycrud.Option
	opts = append(opts, entitycrud.WithLogger(logger))
	if _, ok := registry.GetSchema[RatingSystem](); !ok && fallback != nil {
		opts = append(opts, entitycrud.WithSchema(*fallback))
	}
	ratings := entitycrud.NewService[RatingSystem, string](store, opts...)

	catalog := entitycrud.NewCatalog()
	if err := entitycrud.RegisterService(catalog, "rating-systems", ratings); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := controller.NewMetrics(reg)
	if err != nil {
		return err
	}

	router := httprouter.New()
	controller.Routes(router, "/rating-systems", controller.New[RatingSystem, string](ratings,
		controller.WithLogger(logger),
		controller.WithMetrics(metrics),
		controller.WithName("rating-systems"),
	))
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	router.GET("/version", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		body, _ := encoding.GetCodec("json").Marshal(entitycrud.GetVersionInfo())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		helper.Infof("serving %v on %s with the %s backend", catalog.Names(), cfg.Addr, cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadSchemas(path string, helper *log.Helper) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open schema file: %w", err)
	}
	defer f.Close()

	schemas, err := registry.LoadSchemaFile(f)
	if err != nil {
		return err
	}
	for name, schema := range schemas {
		typ, ok := entityTypes[name]
		if !ok {
			helper.Warnf("schema file describes unknown entity %q", name)
			continue
		}
		if err := registry.RegisterSchemaFor(typ, schema); err != nil {
			return err
		}
		helper.Infof("registered schema for %s on table %s", name, schema.Table)
	}
	return nil
}

// openStore builds the configured backend. The returned schema is used
// when no schema file describes RatingSystem.
func openStore(ctx context.Context, cfg config, logger log.Logger) (datastore.DataStore[RatingSystem, string], *storagemodels.Schema, error) {
	switch cfg.Backend {
	case backendMemory:
		schema := jsonSchema("rating_systems")
		return mock.New[RatingSystem, string](), &schema, nil

	case backendGorm:
		gcfg := gormstore.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Logger: logger}
		if cfg.Migrate {
			gcfg.Migrate = []any{&RatingSystem{}}
		}
		db, err := gormstore.Open(gcfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := gormstore.New[RatingSystem, string](db)
		if err != nil {
			return nil, nil, err
		}
		schema := store.Schema()
		return store, &schema, nil

	case backendDynamoDB:
		client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.DDBEndpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := ddb.New[RatingSystem, string](client, cfg.DDBTable, "Id")
		if err != nil {
			return nil, nil, err
		}
		schema := jsonSchema(cfg.DDBTable)
		return store, &schema, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// jsonSchema addresses RatingSystem attributes by their json names.
func jsonSchema(table string) storagemodels.Schema {
	return storagemodels.Schema{
		Table: table,
		Key:   "Id",
		Columns: map[string]string{
			"Id":          "Id",
			"Name":        "Name",
			"Description": "Description",
			"SiteUrl":     "SiteUrl",
		},
	}
}
