package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sofia-wellness/sofia/libs/config"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/libs/httpx"
	"github.com/sofia-wellness/sofia/libs/kafkax"
	otelx "github.com/sofia-wellness/sofia/libs/otel"
	"github.com/sofia-wellness/sofia/libs/runtime"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/consumer"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/email"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/handlers"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/inbox"
	"github.com/sofia-wellness/sofia/services/notification-service/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type appointmentEvent struct {
	AppointmentID  string `json:"appointment_id"`
	ProviderID     string `json:"provider_id"`
	ProviderUserID string `json:"provider_user_id"`
	RequesterID    string `json:"requester_id"`
	RequesterEmail string `json:"requester_email"`
	StartAt        string `json:"start_at"`
	Status         string `json:"status"`
}

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
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

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@sofia.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)

	handleEvent := func(ctx context.Context, msg kafka.Message) error {
		var evt appointmentEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
			return nil
		}
		if evt.AppointmentID == "" || evt.RequesterID == "" || evt.StartAt == "" {
			logger.Error("missing event fields", "topic", msg.Topic)
			return nil
		}
		startAt, err := time.Parse(time.RFC3339, evt.StartAt)
		if err != nil {
			logger.Error("invalid start_at", "err", err)
			return nil
		}
		when := startAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST")

		var kind, clientMsg, providerMsg, subject string
		switch msg.Topic {
		case "scheduling.appointment.booked.v1":
			kind = "appointment_booked"
			clientMsg = fmt.Sprintf("Your session on %s is confirmed.", when)
			providerMsg = fmt.Sprintf("A new session was booked for %s.", when)
			subject = "Session confirmed"
		case "scheduling.appointment.cancelled.v1":
			kind = "appointment_cancelled"
			clientMsg = fmt.Sprintf("Your session on %s was cancelled.", when)
			providerMsg = fmt.Sprintf("The session on %s was cancelled.", when)
			subject = "Session cancelled"
		default:
			logger.Error("unsupported topic", "topic", msg.Topic)
			return nil
		}

		if err := notificationsRepo.Insert(ctx, storage.Notification{
			RecipientID:   evt.RequesterID,
			AppointmentID: evt.AppointmentID,
			Kind:          kind,
			Message:       clientMsg,
		}); err != nil {
			return err
		}
		if evt.ProviderUserID != "" {
			if err := notificationsRepo.Insert(ctx, storage.Notification{
				RecipientID:   evt.ProviderUserID,
				AppointmentID: evt.AppointmentID,
				Kind:          kind,
				Message:       providerMsg,
			}); err != nil {
				return err
			}
		}

		if strings.TrimSpace(evt.RequesterEmail) != "" {
			if err := emailSender.Send(evt.RequesterEmail, subject, clientMsg); err != nil {
				// In-app rows are already committed; email is best effort.
				logger.Error("email send failed", "err", err, "recipient", evt.RequesterEmail)
			}
		}

		logger.Info("appointment event processed", "appointment_id", evt.AppointmentID, "kind", kind)
		return nil
	}

	startConsumer := func(topic string) {
		if strings.TrimSpace(topic) == "" {
			return
		}
		eventConsumer := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "notification-service"),
			Topic:   topic,
		}, handleEvent)
		go eventConsumer.Run(ctx)
	}
	startConsumer(config.String("KAFKA_CONSUME_TOPIC", "scheduling.appointment.booked.v1"))
	startConsumer(config.String("KAFKA_CONSUME_TOPIC_2", "scheduling.appointment.cancelled.v1"))

	httpHandler := handlers.New(notificationsRepo)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/notifications", httpHandler.List)
	mux.HandleFunc("/api/v1/notifications/read", httpHandler.MarkRead)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
