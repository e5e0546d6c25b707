package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:           "blogctl",
	Short:         "Blog API CLI",
	Long:          "Command line interface for registering, logging in and managing posts on the blog API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
