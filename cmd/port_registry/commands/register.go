package commands

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"port_registry/internal/app/registry"
)

func registerCmd() *cobra.Command {
	var (
		kind       string
		passengers int
		liquids    bool
	)
	cmd := &cobra.Command{
		Use:   "register [registration-id] [nationality] [volume]",
		Short: "Register a ship arriving at the port",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			volume, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid volume %q: %w", args[2], err)
			}
			if utf8.RuneCountInString(kind) != 1 {
				return fmt.Errorf("--kind must be a single letter, got %q", kind)
			}
			code, _ := utf8.DecodeRuneInString(kind)

			err = reg.Register(cmd.Context(), registry.Registration{
				RegistrationID: args[0],
				Nationality:    args[1],
				Volume:         volume,
				Kind:           code,
				Passengers:     passengers,
				CarriesLiquids: liquids,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "v", "ship kind: v (sailing) or c (cargo)")
	cmd.Flags().IntVar(&passengers, "passengers", 0, "passengers aboard (sailing vessels)")
	cmd.Flags().BoolVar(&liquids, "liquids", false, "carries liquids (cargo vessels)")
	return cmd
}
