package theme

import (
	"fmt"
)

// Banner returns the travelmate CLI banner.
func Banner() string {
	const cyan = "\033[36m"
	const magenta = "\033[35m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		"  ✈ ✦   " + magenta + "TRAVELMATE" + reset + "   ✦ ✈\n" +
		cyan + "   ▄██████▄   ▄▄   ▄▄   ▄██████▄\n" + reset +
		cyan + "  ▐██▀  ▀██▌ ███ ▐███ ▐██▀  ▀██▌\n" + reset +
		cyan + "   ▀██▄▄██▀  ▐███▌███▌ ▀██▄▄██▀\n" + reset +
		yellow + "     ────────────────────────────\n" + reset +
		"   a fair, deterministic matchmaker for travellers ✦\n"

	stars := magenta + "       ✦    ✧     ✦     ✧    ✦\n" + reset
	return art + stars
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
