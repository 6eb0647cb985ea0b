package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"port_registry/internal/app/config"
	"port_registry/internal/app/registry"
	"port_registry/internal/app/repository"
)

var (
	repoKind string
	conf     *config.Config
	reg      *registry.Registry
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "port_registry",
		Short:        "Register ships arriving at the port and report fleet capacity",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			conf, err = config.NewConfig()
			if err != nil {
				return err
			}
			if repoKind != "" {
				conf.Repository = repoKind
			}
			config.SetupLogging(conf)

			repo, err := repository.New(cmd.Context(), conf)
			if err != nil {
				return err
			}
			logrus.Infof("using %s repository", conf.Repository)
			reg = registry.New(repo)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&repoKind, "repository", "r", "", "storage backend: memory, sql or redis (overrides config)")

	root.AddCommand(serveCmd(), registerCmd(), capacityCmd(), shipsCmd(), showCmd())
	return root
}
