package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tenantgate/tenantgate/internal/interfaces/cli/migrate"
	"github.com/tenantgate/tenantgate/internal/interfaces/cli/server"
)

//	@title						tenantgate API
//	@version					1.0
//	@description				Plan catalog administration, tenant subscription lifecycle and entitlement-gated tenant routes.
//	@BasePath					/
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:   "tenantgate",
		Short: "Tenant entitlement and subscription engine",
		Long:  `tenantgate serves plan catalog administration, tenant subscription lifecycle and the entitlement gates in front of tenant routes.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
