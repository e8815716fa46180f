package main

import "github.com/spf13/cobra"

// version is set at build time via ldflags.
var version = "dev"

func setVersion(cmd *cobra.Command) {
	cmd.Version = version
	cmd.SetVersionTemplate("handle-lookup {{.Version}}\n")
}
