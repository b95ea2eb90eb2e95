package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/UnknownOlympus/wiglebt/internal/format"
)

// banner is printed once when interactive mode starts. Carried over from the
// original tool unchanged.
const banner = `------------------------------------------------------
|                  kkNXK0OOOkkOOO0                   |
|              kkkNXK0OOOkkOOO0KXNkkkk               |
|           dNX0OOkkkkkkkkkkkkkkkkOO0XNd             |
|         ;N0OkkkkkkkkkkdokkkkkkkkkkkkkkO0N:         |
|       ,XOkkkkkkkkkkkkkx  okkkkkkkkkkkkkkkOX;       |
|      OOkkkkkkkkkkkkkkkx    ckkkkkkkkkkkkkkkO0      |
|     XOkkkkkkkkkkkkkkkkx      :kkkkkkkkkkkkkkOX     |
|    0kkkkkkkkkkkkkkkkkkx        ;kkkkkkkkkkkkkkK    |
|   dOkkkkkkkkkkkkkkkkkkx          ,kkkkkkkkkkkkkd   |
|  .Okkkkkkkkkkkkkkkkkkkx    .o       kkkkkkkkkkkO   |
|  xkkkkkkkkkd  ;kkkkkkkx    .OKd      .kkkkkkkkkkx  |
|  Okkkkkkko      ,kkkkkx    .kkOKx      .kkkkkkkkO. |
| ;kkkkkkkkOXo       kkkx    .kkkk       NOkkkkkkkk: |
| okkkkkkkkkkOKx      .kx    .kx       N0kkkkkkkkkko |
| xkkkkkkkkkkkkOKk                  .N0kkkkkkkkkkkkx |
| kkkkkkkkkkkkkkkOKO              .N0kkkkkkkkkkkkkkk |
| OkkkkkkkkkkkkkkkkOK0           XOkkkkkkkkkkkkkkkkO |
| kkkkkkkkkkkkkkkkkkkOKx      .XOkkkkkkkkkkkkkkkkkkk |
| kkkkkkkkkkkkkkkkkkkc           kkkkkkkkkkkkkkkkkkk |
| kkkkkkkkkkkkkkkkk:               kkkkkkkkkkkkkkkkk |
| dkkkkkkkkkkkkkk;           .       xkkkkkkkkkkkkkd |
| lkkkkkkkkkkkk,      lXx    .0N.      dkkkkkkkkkkkl |
| ,kkkkkkkkkk       dKOkx    .kk0N.      dkkkkkkkkk, |
|  kkkkkkkkk      xKOkkkx    .kkkk;      cOkkkkkkkk  |
|  lkkkkkkkk0N  kKOkkkkkx    .kk       lXOkkkkkkkkl  |
|  .kkkkkkkkkk0KOkkkkkkkx    ..      dKOkkkkkkkkkk.  |
|   :kkkkkkkkkkkkkkkkkkkx          xKOkkkkkkkkkkkc   |
|    dkkkkkkkkkkkkkkkkkkx        kKOkkkkkkkkkkkkd    |
|     xkkkkkkkkkkkkkkkkkx      0KOkkkkkkkkkkkkkd     |
|      lkkkkkkkkkkkkkkkkx    KKOkkkkkkkkkkkkkkl      |
|       .kkkkkkkkkkkkkkkx  N0Okkkkkkkkkkkkkkk.       |
|          kkkkkkkkkkkkkxN0kkkkkkkkkkkkkkkk.         |
|            .kkkkkkkkkkOkkkkkkkkkkkkkkk.            |
|                  dkkkkkkkkkkkkkkd                  |
|                                                    |
|----------------------------------------------------|
|   Wigle-BT --- Bluetooth Device Trilateration Tool |
|----------------------------------------------------|`

const menu = `|----------------------------------------------------|
|                1. Get Device Location              |
|                2. Exit                             |
|----------------------------------------------------|`

// runInteractive drives the two-option menu loop. It returns only on the
// exit option or when standard input is exhausted; a failed resolution just
// brings the menu back.
func (a *App) runInteractive(ctx context.Context) error {
	fmt.Fprintln(a.Out, banner)

	scanner := bufio.NewScanner(a.In)

	for {
		fmt.Fprintln(a.Out, menu)
		fmt.Fprint(a.Out, "        Enter choice (1/2): ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		switch scanner.Text() {
		case "1":
			fmt.Fprint(a.Out, "Enter Bluetooth network MAC address: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			a.lookupAndPrint(ctx, scanner.Text())
		case "2":
			return nil
		default:
			fmt.Fprintln(a.Out, "Error: invalid choice")
		}
	}
}

// lookupAndPrint resolves one device and prints its location. Both lines
// render through the format package, so the URL here has the same shape as
// the google-maps output tag in one-shot mode.
func (a *App) lookupAndPrint(ctx context.Context, netid string) {
	coords, err := a.Locator.Locate(ctx, netid)
	if err != nil {
		a.Log.ErrorContext(ctx, "Failed to resolve device location", "netid", netid, "error", err)
		return
	}

	a.recordLookup(ctx, netid, *coords)

	fmt.Fprintln(a.Out, "Location: "+format.FullCoordinate.Render(*coords))
	fmt.Fprintln(a.Out, "Google Maps URL:  "+format.GoogleMaps.Render(*coords))

	if a.Addresser == nil {
		return
	}

	addr, err := a.Addresser.ReverseGeocode(ctx, *coords)
	if err != nil {
		a.Log.WarnContext(ctx, "Failed to reverse geocode location", "error", err)
		return
	}
	fmt.Fprintln(a.Out, "Nearest address: "+addr)
}
