package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "bank-loans-service/internal/adapter/http"
	idemp "bank-loans-service/internal/adapter/middleware"
	"bank-loans-service/internal/adapter/repository/mysql"
	"bank-loans-service/internal/adapter/stream/kafka"
	"bank-loans-service/internal/config"
	loanDomain "bank-loans-service/internal/domain/loan"
	"bank-loans-service/internal/infrastructure/cache"
	"bank-loans-service/internal/infrastructure/db"
	loanUC "bank-loans-service/internal/usecase/loan"
	"bank-loans-service/internal/usecase/notification"
	"bank-loans-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatal("mysql connect", zap.Error(err))
	}
	if err := gdb.AutoMigrate(&loanDomain.Loan{}); err != nil {
		zlog.Fatal("migrate loans schema", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("redis connect", zap.Error(err))
	}

	producer, err := kafka.NewProducer(kafka.Config{
		BootstrapServers: cfg.KafkaBootstrapServers,
		ClientID:         cfg.KafkaClientID,
		SecurityProtocol: cfg.KafkaSecurityProtocol,
		SASLMechanism:    cfg.KafkaSASLMechanism,
		SASLUsername:     cfg.KafkaSASLUsername,
		SASLPassword:     cfg.KafkaSASLPassword,
	})
	if err != nil {
		zlog.Fatal("kafka producer", zap.Error(err))
	}
	defer producer.Close()

	repo := mysql.NewLoanRepository(gdb)
	dispatcher := notification.NewDispatcher(producer, zlog)
	uc := loanUC.NewUsecase(repo, dispatcher, zlog)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	loanGroup := e.Group("/loan", idemp.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	loanGroup.POST("/issue", lh.IssueLoan)
	loanGroup.GET("/user/:user_id", lh.GetLoansByUser)
	loanGroup.PUT("/status/:loan_id", lh.UpdateLoanStatus)
	loanGroup.PUT("/repay/:loan_id", lh.RepayLoan)
	loanGroup.PUT("/update", lh.UpdateLoan)

	addr := ":" + cfg.AppPort
	zlog.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
