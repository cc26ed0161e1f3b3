package cmd

import (
	httpapi "github.com/bnema/fhe-strength-tracker/internal/adapters/api/http"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(loader *appLoader) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, app *app, _ []string) error {
			if listen == "" {
				listen = app.settings.HTTPListen
			}

			gin.SetMode(gin.ReleaseMode)
			server, err := httpapi.NewServer(httpapi.Options{Tracker: app.tracker, Logger: app.logger})
			if err != nil {
				return err
			}

			app.logger.Info("serving tracker api", zap.String("listen", listen))
			return server.Run(cmd.Context(), listen)
		}),
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: http.listen from config)")

	return cmd
}
