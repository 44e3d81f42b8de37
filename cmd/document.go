package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/pkg/host"
)

// openDocument loads the configuration and creates a file host for path.
func openDocument(cmd *cobra.Command, path string) (*config.Config, *host.FileHost, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	h, err := host.New(path, host.OptionsFromConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := h.CheckDocument(); err != nil {
		return nil, nil, err
	}
	cli.GetLogger(cmd).WithField("path", h.Path()).Debug("Opened document")
	return cfg, h, nil
}
