package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "microcredit-coop/internal/adapter/http"
	"microcredit-coop/internal/adapter/messaging"
	mw "microcredit-coop/internal/adapter/middleware"
	"microcredit-coop/internal/adapter/repository/sqldb"
	"microcredit-coop/internal/config"
	"microcredit-coop/internal/domain/event"
	"microcredit-coop/internal/domain/tally"
	"microcredit-coop/internal/domain/uow"
	"microcredit-coop/internal/infrastructure/cache"
	"microcredit-coop/internal/infrastructure/db"
	"microcredit-coop/internal/infrastructure/logging"
	"microcredit-coop/internal/jobs"
	ucMember "microcredit-coop/internal/usecase/member"
	ucPayment "microcredit-coop/internal/usecase/payment"
	ucReport "microcredit-coop/internal/usecase/report"
	ucRequest "microcredit-coop/internal/usecase/request"
	ucVote "microcredit-coop/internal/usecase/vote"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.NewLogger(log, db.ParseLogLevel(cfg.DBLogLevel)))
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.DBAutoMigrate {
		if err := sqldb.Migrate(gdb); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, 3*time.Second)
	if err != nil {
		return err
	}
	defer rdb.Close()
	reports := cache.NewReportCache(rdb, time.Duration(cfg.ReportCacheTTLSecs)*time.Second)

	var events event.Publisher = event.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := messaging.NewKafkaPublisher(ctx, cfg.KafkaBrokers, log)
		if err != nil {
			return err
		}
		defer kp.Close()
		events = kp
	} else {
		log.Warn("KAFKA_BROKERS not set, events are dropped")
	}

	// repositories + use cases
	repos := uow.Repos{
		Requests: sqldb.NewRequestRepository(gdb),
		Votes:    sqldb.NewVoteRepository(gdb),
		Payments: sqldb.NewPaymentRepository(gdb),
		Members:  sqldb.NewMemberRepository(gdb),
	}
	tx := sqldb.NewGormUoW(gdb)
	policy := ucVote.Policy{
		Rule:         tally.Policy{Quorum: cfg.QuorumTotal, Approvals: cfg.QuorumApprovals},
		ScaleToGroup: cfg.QuorumScaleToGroup,
	}

	requestUC := ucRequest.NewUsecase(repos.Requests, repos.Members).WithEvents(events).WithCache(reports).WithLogger(log)
	voteUC := ucVote.NewUsecase(repos, tx, policy).WithEvents(events).WithCache(reports).WithLogger(log)
	memberUC := ucMember.NewUsecase(repos.Members)
	paymentUC := ucPayment.NewUsecase(repos.Payments, tx).WithCache(reports).WithLogger(log)
	reportUC := ucReport.NewUsecase(sqldb.NewReportRepository(gdb)).WithCache(reports).WithLogger(log)

	sched, err := jobs.NewScheduler(cfg.OverdueSweepSpec, jobs.NewOverdueJob(paymentUC, log), log)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestID(), logging.RequestLogger(log), middleware.Recover())

	httpadp.Routes{
		Health:   httpadp.NewHandler(),
		Requests: httpadp.NewRequestHandler(requestUC),
		Votes:    httpadp.NewVoteHandler(voteUC),
		Members:  httpadp.NewMemberHandler(memberUC),
		Payments: httpadp.NewPaymentHandler(paymentUC),
		Reports:  httpadp.NewReportHandler(reportUC),
	}.Register(e,
		mw.Auth(cfg.JWTSecret, cfg.JWTIssuer),
		mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log),
	)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
