// Command bootstrap seeds the first admin credential so the HTTP API can be
// logged into on a fresh database.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/app"
	"github.com/atelier-erp/atelier-erp/internal/auth"
)

const minPasswordLength = 4

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	reader := bufio.NewReader(os.Stdin)
	username, err := prompt(reader, "Admin username: ")
	if err != nil {
		logger.Error("read username", slog.Any("error", err))
		os.Exit(1)
	}
	if username == "" {
		logger.Error("username must not be empty")
		os.Exit(1)
	}
	password, err := prompt(reader, "Admin password: ")
	if err != nil {
		logger.Error("read password", slog.Any("error", err))
		os.Exit(1)
	}
	if len(password) < minPasswordLength {
		logger.Error("password too short", slog.Int("min_length", minPasswordLength))
		os.Exit(1)
	}

	dbpool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	repo := auth.NewRepository(dbpool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("ensure app_users schema", slog.Any("error", err))
		os.Exit(1)
	}

	cred, err := auth.NewService(repo).Register(ctx, username, auth.RoleAdmin, password)
	if err != nil {
		logger.Error("create admin credential", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("admin credential created",
		slog.Int64("id", cred.ID), slog.String("username", cred.Username))
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
