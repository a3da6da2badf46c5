// Command menuctl downloads the catalog template, checks catalog files
// offline and imports them into the database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/menuboard/internal/core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRowsFailed) {
			fmt.Fprintln(os.Stderr, errorMessage(err))
		}
		os.Exit(1)
	}
}

// errorMessage renders a command failure for stderr. Known failures get the
// catalogued message and code with the underlying error on a second line.
func errorMessage(err error) string {
	if !core.IsUserFacing(err) {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("error: %s\n  %v", core.FormatUserError(err), err)
}
