package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/ashureev/matter/internal/responder"
)

func newServeResponderCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-responder",
		Short: "Serve the configured reflection responder over gRPC",
		Long: `Runs the responder selected by RESPONDER_PROVIDER as a gRPC sidecar.
Servers started with RESPONDER_PROVIDER=grpc and RESPONDER_AGENT_ADDR pointing
here use it without holding model credentials themselves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.resp.Name() == string(responder.ProviderStatic) {
				slog.Warn("Serving the static responder; every reflection gets the fallback sentence")
			}
			if strings.HasPrefix(a.resp.Name(), "grpc:") {
				return errors.New("serve-responder cannot forward to another sidecar")
			}

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			srv := grpc.NewServer()
			responder.RegisterSidecarServer(srv, responder.NewSidecar(a.resp))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				srv.GracefulStop()
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "%s responder %s on %s\n", green("●"), a.resp.Name(), lis.Addr())
			if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":50051", "listen address")
	return cmd
}
