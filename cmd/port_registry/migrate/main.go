package main

import (
	"context"

	"port_registry/internal/app/config"
	"port_registry/internal/app/repository"

	"github.com/sirupsen/logrus"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	config.SetupLogging(conf)

	open, err := repository.Dialector(conf)
	if err != nil {
		logrus.Fatalf("error selecting sql driver: %v", err)
	}

	err = repository.NewSQL(open).Migrate(context.Background())
	if err != nil {
		logrus.Fatalf("error migrating ships: %v", err)
	}

	logrus.Info("Database migration completed")
}
