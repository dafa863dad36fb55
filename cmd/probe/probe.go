package probe

import (
	"time"

	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/util/command"
)

const (
	verboseFlag string = "verbose"

	probeTimeout = 5 * time.Second
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
