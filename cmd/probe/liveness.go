package probe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes against the (local) tool server",
		Long: `Runs liveness probes against the (local) tool server.
Hits the secret-guarded healthy endpoint, which also checks node
reachability. Returns a zero exit code when the server reports healthy.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			runLiveness(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runLiveness(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	client := &http.Client{Timeout: probeTimeout}

	res, err := client.Get(fmt.Sprintf("http://localhost%s/-/healthy?mgmt-secret=%s",
		cfg.Echo.ListenAddress, url.QueryEscape(cfg.Management.Secret)))
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
