package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/interview"
	"agrisurvey/internal/platform/config"
	"agrisurvey/internal/platform/httpserver"
	"agrisurvey/internal/platform/logger"
	"agrisurvey/internal/platform/metrics"
	"agrisurvey/internal/platform/redis"
	"agrisurvey/internal/producteur"
	"agrisurvey/internal/question"
	"agrisurvey/internal/questionnaire"
	"agrisurvey/internal/storage"
	httptransport "agrisurvey/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Stores: Postgres when configured, in-memory otherwise. The question
	// bank and interview planning are operator working sets and stay in
	// memory either way.
	var (
		questionnaireStore questionnaire.Store = questionnaire.NewInMemoryStore()
		producteurStore    producteur.Store    = producteur.NewInMemoryStore()
		auditStore         audit.Store         = audit.NewInMemoryStore()
	)
	if cfg.Postgres.URL != "" {
		db, err := storage.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			return err
		}
		defer db.Close()
		if err := storage.EnsureSchema(ctx, db); err != nil {
			log.Error("schema setup failed", "error", err)
			return err
		}
		questionnaireStore = questionnaire.NewPostgresStore(db)
		producteurStore = producteur.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)
		log.Info("using postgres stores")
	}

	var cache questionnaire.Cache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = questionnaire.NewRedisCache(redisClient.Client, cfg.Redis.CacheTTL, m)
		log.Info("published questionnaire cache enabled")
	}

	var sink audit.Sink
	kafkaSink, err := audit.NewKafkaSink(cfg.Kafka)
	if err != nil {
		log.Error("kafka connection failed", "error", err)
		return err
	}
	if kafkaSink != nil {
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit events forwarded to kafka", "topic", cfg.Kafka.Topic)
	}

	inbox := make(chan audit.Event, 256)
	auditor := audit.NewPublisher(auditStore, inbox)
	worker := audit.NewWorker(auditStore, sink, inbox, log)

	questionnaireService := questionnaire.NewService(questionnaireStore, cache, auditor, m, log)
	questionService := question.NewService(question.NewInMemoryStore(), auditor, log)
	interviewService := interview.NewService(interview.NewInMemoryStore(), auditor, m, log)
	producteurService := producteur.NewService(producteurStore, auditor, m, log)

	router := httptransport.NewRouter(log, m,
		httptransport.NewQuestionnaireHandler(questionnaireService, auditor, log),
		httptransport.NewQuestionHandler(questionService, log),
		httptransport.NewInterviewHandler(interviewService, log),
		httptransport.NewProducteurHandler(producteurService, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting agrisurvey server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
