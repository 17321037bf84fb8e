package grpc

import (
	"net"

	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type App struct {
	health.UnimplementedHealthServer

	stack *services.Stack
	srv   *grpc.Server
}

func NewGrpc(stack *services.Stack) *App {
	server := &App{
		stack: stack,
		srv:   grpc.NewServer(),
	}

	health.RegisterHealthServer(server.srv, server)
	reflection.Register(server.srv)

	return server
}

func (v *App) Listen() error {
	listener, err := net.Listen("tcp", viper.GetString("grpc.bind"))
	if err != nil {
		return err
	}

	log.Info().Str("bind", listener.Addr().String()).Msg("gRPC server is listening...")
	return v.srv.Serve(listener)
}

func (v *App) Stop() {
	v.srv.GracefulStop()
}
