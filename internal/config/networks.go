package config

import (
	"bytes"
	_ "embed"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github/chapool/go-near-tools/internal/util"
)

//go:embed networks.yml
var defaultNetworksYAML []byte

// Network is one entry of the built-in network catalog.
type Network struct {
	NetworkID   string   `mapstructure:"network_id" json:"network_id"`
	NodeURLs    []string `mapstructure:"node_urls" json:"node_urls"`
	ExplorerURL string   `mapstructure:"explorer_url" json:"explorer_url"`
}

// Networks returns the built-in network catalog, merged with the optional
// override file pointed at by SERVER_NEAR_NETWORKS_FILE. Overrides replace
// or extend individual catalog entries.
func Networks() (map[string]Network, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaultNetworksYAML)); err != nil {
		return nil, errors.Wrap(err, "failed to read built-in network catalog")
	}

	if path := util.GetEnv("SERVER_NEAR_NETWORKS_FILE", ""); len(path) > 0 {
		v.SetConfigFile(path)

		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to merge network catalog overrides from %q", path)
		}
	}

	var networks map[string]Network
	if err := v.UnmarshalKey("networks", &networks); err != nil {
		return nil, errors.Wrap(err, "failed to decode network catalog")
	}

	return networks, nil
}

// ResolveNetwork looks up the given network id in the catalog.
func ResolveNetwork(networkID string) (Network, error) {
	networks, err := Networks()
	if err != nil {
		return Network{}, err
	}

	network, ok := networks[networkID]
	if !ok {
		known := make([]string, 0, len(networks))
		for id := range networks {
			known = append(known, id)
		}
		sort.Strings(known)

		return Network{}, errors.Errorf("unknown network %q, known networks: %s", networkID, strings.Join(known, ", "))
	}

	return network, nil
}
