package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sofia-wellness/sofia/libs/config"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/libs/httpx"
	"github.com/sofia-wellness/sofia/libs/kafkax"
	otelx "github.com/sofia-wellness/sofia/libs/otel"
	"github.com/sofia-wellness/sofia/libs/runtime"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/handlers"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/outbox"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "scheduling-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	scheduleRepo := storage.NewScheduleRepository(pool)
	slotRepo := storage.NewSlotRepository(pool)
	apptRepo := storage.NewAppointmentRepository(pool)
	reviewRepo := storage.NewReviewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	dir, err := directory.NewClient(config.String("DIRECTORY_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("directory client init failed; using database lookup", "err", err)
		dir = nil
	}
	if dir == nil {
		dir = directory.NewStore(pool)
	}

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	releaseSlotOnCancel := config.String("SLOT_RELEASE_ON_CANCEL", "false") == "true"

	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo, dir, logger)
	slotHandler := handlers.NewSlotHandler(slotRepo, scheduleRepo, dir, logger)
	bookingHandler := handlers.NewBookingHandler(apptRepo, slotRepo, outboxRepo, dir, logger, releaseSlotOnCancel)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, apptRepo, dir, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", slotHandler.PublicList)
	mux.HandleFunc("/api/v1/public/reviews", reviewHandler.PublicList)
	mux.HandleFunc("/api/v1/provider/schedule", scheduleHandler.List)
	mux.HandleFunc("/api/v1/provider/schedule/add", scheduleHandler.Add)
	mux.HandleFunc("/api/v1/provider/schedule/remove", scheduleHandler.Remove)
	mux.HandleFunc("/api/v1/provider/slots", slotHandler.ListMine)
	mux.HandleFunc("/api/v1/provider/slots/generate", slotHandler.Generate)
	mux.HandleFunc("/api/v1/provider/slots/add", slotHandler.Add)
	mux.HandleFunc("/api/v1/provider/slots/remove", slotHandler.Remove)
	mux.HandleFunc("/api/v1/provider/appointments/status", bookingHandler.UpdateStatus)
	mux.HandleFunc("/api/v1/provider/reviews", reviewHandler.ListMine)
	mux.HandleFunc("/api/v1/provider/reviews/moderate", reviewHandler.Moderate)
	mux.HandleFunc("/api/v1/provider/reviews/remove", reviewHandler.Delete)
	mux.HandleFunc("/api/v1/appointments", bookingHandler.List)
	mux.HandleFunc("/api/v1/appointments/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/appointments/cancel", bookingHandler.Cancel)
	mux.HandleFunc("/api/v1/reviews", reviewHandler.Submit)
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "scheduling")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
