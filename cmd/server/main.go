// @title           Agro Registry API
// @version         1.0
// @description     API регистрации пользователей и их персональных данных.

// @host      localhost:8080
// @BasePath  /
// @schemes http
//
// Package main содержит точку входа серверного приложения.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - открытие пула соединений к базе данных и управление его жизненным циклом;
//   - запуск миграций (если включены в конфиге);
//   - создание сессионного менеджера, репозиториев, сервисов и HTTP-обработчиков;
//   - настройку и запуск HTTP(S)-сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется
// с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/api"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/config"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/repository"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/service"
	"github.com/vkotlyarenko/go-agro-registry/internal/shared/logger"

	_ "github.com/vkotlyarenko/go-agro-registry/swagger/docs"
)

func main() {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		sugar.Fatal(err)
	}
	cfg.ApplyEnvOverrides()

	// открываем пул соединений; пул — общий на весь процесс,
	// передаётся дальше явно
	pool, err := config.OpenDB(cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() {
		if err := pool.Close(); err != nil {
			sugar.Errorf("db close: %v", err)
		}
	}()

	if cfg.Migrations.Enabled {
		if err := config.RunMigrations(pool, cfg.Migrations.Path); err != nil {
			sugar.Fatal(err)
		}
		sugar.Info("migrations applied successfully")
	}

	// сессионный менеджер: одна транзакционная сессия на операцию
	sessions := db.NewManager(pool)

	// создаём репы
	repos := service.Repositories{
		Users:        repository.NewUsersRepository(),
		PersonalData: repository.NewPersonalDataRepository(),
	}
	// создаём сервис
	svc := service.NewServices(repos, sessions, cfg)
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger)
	// создаём роутер
	router := api.NewRouter(handler)
	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
