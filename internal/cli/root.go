package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/wiglebt/internal/format"
	"github.com/UnknownOlympus/wiglebt/internal/geocoding"
	"github.com/UnknownOlympus/wiglebt/internal/history"
	"github.com/UnknownOlympus/wiglebt/internal/models"
	"github.com/UnknownOlympus/wiglebt/internal/wigle"
	"github.com/spf13/cobra"
)

// App bundles the dependencies the command tree operates on. Optional
// features are represented by nil fields: no Addresser means no reverse
// geocoding, no History means lookups are not recorded.
type App struct {
	Locator   wigle.Locator       // Resolves a hardware address to coordinates.
	Addresser geocoding.Addresser // Nil when no google_api_key is configured.
	History   history.Interface   // Nil when no database is configured.
	Log       *slog.Logger        // Logger for operational events (stderr).
	In        io.Reader           // Interactive-mode input, os.Stdin in production.
	Out       io.Writer           // Rendered output, os.Stdout in production.
}

// Errors surfaced by flag validation, before any network call is made.
var (
	ErrOutputRequired     = errors.New("--output parameter is required when using --mac")
	ErrAddressUnavailable = errors.New("--address requires google_api_key in the config file")
	ErrHistoryUnavailable = errors.New("--history requires a configured database")
	ErrHistoryWithMac     = errors.New("--history cannot be combined with --mac")
)

// NewRootCommand builds the wiglebt command. With --mac it runs the one-shot
// resolution path; with --history it lists recorded lookups; with neither it
// enters the interactive menu loop.
func NewRootCommand(app *App) *cobra.Command {
	var (
		mac      string
		output   string
		address  bool
		historyN int
	)

	cmd := &cobra.Command{
		Use:          "wiglebt",
		Short:        "Bluetooth device trilateration tool",
		Long:         "Resolve the known physical location of a bluetooth device through the WiGLE wardriving database.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if historyN > 0 {
				if mac != "" {
					return ErrHistoryWithMac
				}
				return app.runHistory(ctx, historyN)
			}

			if mac == "" {
				return app.runInteractive(ctx)
			}

			return app.runOneShot(ctx, mac, output, address)
		},
	}

	cmd.Flags().StringVar(&mac, "mac", "", "Bluetooth MAC address to search for")
	cmd.Flags().StringVar(&output, "output", "",
		"Output format(s): full-coordinate, latitude, longitude, google-maps (comma-separated)")
	cmd.Flags().BoolVar(&address, "address", false,
		"Also print the nearest street address (requires google_api_key)")
	cmd.Flags().IntVar(&historyN, "history", 0,
		"Print the N most recent lookups and exit (requires a configured database)")
	cmd.Flags().String("config", "", "Path to the credentials file (default config.json)")

	return cmd
}

// runOneShot is the argument-driven mode: validate, resolve once, emit every
// requested rendering in request order.
func (a *App) runOneShot(ctx context.Context, mac, output string, withAddress bool) error {
	if output == "" {
		return ErrOutputRequired
	}

	formats, err := format.ParseList(output)
	if err != nil {
		return err
	}

	if withAddress && a.Addresser == nil {
		return ErrAddressUnavailable
	}

	coords, err := a.Locator.Locate(ctx, mac)
	if err != nil {
		return err
	}

	a.recordLookup(ctx, mac, *coords)

	for _, line := range format.Render(*coords, formats) {
		fmt.Fprintln(a.Out, line)
	}

	if withAddress {
		addr, err := a.Addresser.ReverseGeocode(ctx, *coords)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, addr)
	}

	return nil
}

// runHistory prints the most recent recorded lookups, newest first.
func (a *App) runHistory(ctx context.Context, limit int) error {
	if a.History == nil {
		return ErrHistoryUnavailable
	}

	lookups, err := a.History.RecentLookups(ctx, limit)
	if err != nil {
		return err
	}

	for _, lookup := range lookups {
		fmt.Fprintf(a.Out, "%s  %s  %s\n",
			lookup.NetID,
			format.FullCoordinate.Render(lookup.Coords),
			lookup.LookedUpAt.Format(time.RFC3339),
		)
	}

	return nil
}

// recordLookup persists a successful resolution when history is enabled.
// A failed insert is logged and otherwise ignored: the result the user asked
// for has already been obtained and still gets emitted.
func (a *App) recordLookup(ctx context.Context, netid string, coords models.Coordinates) {
	if a.History == nil {
		return
	}

	if err := a.History.SaveLookup(ctx, netid, coords); err != nil {
		a.Log.WarnContext(ctx, "Failed to record lookup", "netid", netid, "error", err)
	}
}
