package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"port_registry/internal/app/ds"
)

func capacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity",
		Short: "Print the total capacity of the registered fleet, in m3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := reg.TotalCapacity(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", total)
			return nil
		},
	}
}

func shipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ships",
		Short: "List registered ships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ships, err := reg.Ships(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNATIONALITY\tTYPE\tVOLUME\tCAPACITY")
			for _, s := range ships {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n", s.RegistrationID(), s.Nationality(), s.Kind(), s.Volume(), s.Capacity())
			}
			return w.Flush()
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [registration-id]",
		Short: "Show one registered ship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ship, found, err := reg.Ship(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no ship registered as %q", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:          %s\n", ship.RegistrationID())
			fmt.Fprintf(out, "nationality: %s\n", ship.Nationality())
			fmt.Fprintf(out, "type:        %s\n", ship.Kind())
			fmt.Fprintf(out, "volume:      %g\n", ship.Volume())
			switch s := ship.(type) {
			case *ds.SailingVessel:
				fmt.Fprintf(out, "passengers:  %d\n", s.PassengerCount())
			case *ds.CargoVessel:
				fmt.Fprintf(out, "liquids:     %t\n", s.CarriesLiquids())
			}
			fmt.Fprintf(out, "capacity:    %g\n", ship.Capacity())
			return nil
		},
	}
}
