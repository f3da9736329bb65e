package notify

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
)

// Send shows a desktop notification. Notifications are best-effort:
// failures are reported on stderr and otherwise ignored.
func Send(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		fmt.Fprintf(os.Stderr, "notification failed: %v\n", err)
	}
}
