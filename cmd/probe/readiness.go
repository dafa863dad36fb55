package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/config"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes against the (local) tool server",
		Long: `Runs readiness probes against the (local) tool server.
Returns a zero exit code when the server reports ready.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			runReadiness(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runReadiness(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	client := &http.Client{Timeout: probeTimeout}

	res, err := client.Get(fmt.Sprintf("http://localhost%s/-/ready", cfg.Echo.ListenAddress))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if verbose {
		fmt.Print(string(body))
	}

	if res.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
