package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kakunje/prakriti/internal/metrics"
	"github.com/kakunje/prakriti/internal/webapi"
	"github.com/kakunje/prakriti/internal/webserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	var port int
	var host string
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API for scoring sheets and browsing saved assessments.

Endpoints:
  GET  /api/health
  GET  /api/questions
  POST /api/assessments          evaluate and store a sheet (?strict=, ?patient_id=)
  GET  /api/assessments          list assessments
  GET  /api/assessments/{id}     one report
  GET  /api/patients             list patients
  GET  /api/patients/{id}
  GET  /api/patients/{id}/assessments
  GET  /metrics                  Prometheus metrics

The server binds to 127.0.0.1 unless --host is given. It has no
authentication.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.settings.Server.Port
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close() //nolint:errcheck

			webapi.Version = version
			m := metrics.New()
			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				AllowedOrigins: origins,
				Handlers: webapi.NewHandlers(repo, engine, webapi.Options{
					Strict:  a.settings.Strict,
					Logger:  a.logger,
					Metrics: m,
				}),
				Metrics: m,
				Logger:  a.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", srv.Addr())
			a.logger.Info("serving", zap.String("address", srv.Addr()), zap.String("database", a.settings.DatabasePath()))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", webserver.DefaultPort, "Port to listen on (default from server.port)")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to bind")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Allowed CORS origin (repeatable)")
	return cmd
}
