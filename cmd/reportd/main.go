package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/storewise/shop-analytics/internal/config"
	"github.com/storewise/shop-analytics/internal/httpx"
	"github.com/storewise/shop-analytics/internal/ingest"
	kafkax "github.com/storewise/shop-analytics/internal/kafka"
	"github.com/storewise/shop-analytics/internal/mysql"
	"github.com/storewise/shop-analytics/internal/postgres"
	"github.com/storewise/shop-analytics/internal/redisx"
	"github.com/storewise/shop-analytics/internal/reports"
	"github.com/storewise/shop-analytics/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// initial snapshot from the source database
	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	live := store.NewLive(snap)
	log.Printf("snapshot loaded: %d customers, %d orders, %d payments",
		len(snap.Customers), len(snap.Orders), len(snap.Payments))

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for payment.recorded
	prod := kafkax.NewProducer(cfg.KafkaBrokers, store.TopicPaymentRecorded, 1024)
	prod.Start(ctx)

	// ingest consumer applies payment events to the live store
	svc := &ingest.Service{Store: live, Redis: rdb, ServiceName: cfg.ServiceName + "-ingest"}
	group := getenv("INGEST_GROUP", "report-ingest")
	workers := mustAtoi(os.Getenv("INGEST_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, store.TopicPaymentRecorded, workers)
	go func() {
		log.Printf("ingest consumer started: group=%s topic=%s workers=%d", group, store.TopicPaymentRecorded, workers)
		if err := cons.Start(ctx, svc.HandlePaymentRecorded); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// HTTP
	router := httpx.NewRouter()
	rh := &httpx.ReportsHandler{
		Store:    live,
		Redis:    rdb,
		Engine:   reports.New(loc),
		Producer: prod,
		Service:  cfg.ServiceName,
	}
	rh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Printf("HTTP listening at %s (tz=%s)", cfg.HTTPAddr, cfg.ReportTZ)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush & close writer
	prod.WaitClosed()
	cancel() // stop consumer
	time.Sleep(500 * time.Millisecond)
}

func loadSnapshot(ctx context.Context, cfg config.Config) (store.Snapshot, error) {
	switch cfg.Source {
	case "mysql":
		db, err := mysql.Open(cfg.MySQLDSN)
		if err != nil {
			return store.Snapshot{}, err
		}
		defer db.Close()
		return (&mysql.Loader{DB: db}).LoadSnapshot(ctx)
	default:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return store.Snapshot{}, err
		}
		defer pool.Close()
		return (&postgres.Loader{DB: pool}).LoadSnapshot(ctx)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
