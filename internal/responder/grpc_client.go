package responder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	errConnectionShutdown       = errors.New("connection shutdown")
	errConnectionStateUnchanged = errors.New("connection state did not change")
)

// GrpcClient calls a reflection sidecar over gRPC.
type GrpcClient struct {
	conn   *grpc.ClientConn
	addr   string
	logger *slog.Logger
}

// GrpcClientConfig holds configuration for the gRPC client.
type GrpcClientConfig struct {
	Address          string
	ConnectTimeout   time.Duration
	KeepaliveTime    time.Duration
	KeepaliveTimeout time.Duration
	DialOptions      []grpc.DialOption
}

// DefaultGrpcClientConfig returns default configuration.
func DefaultGrpcClientConfig() GrpcClientConfig {
	return GrpcClientConfig{
		Address:          "localhost:50051",
		ConnectTimeout:   5 * time.Second,
		KeepaliveTime:    2 * time.Minute,
		KeepaliveTimeout: 10 * time.Second,
	}
}

// NewGrpcClient connects to the sidecar at addr with default settings.
func NewGrpcClient(addr string, logger *slog.Logger) (*GrpcClient, error) {
	cfg := DefaultGrpcClientConfig()
	if addr != "" {
		cfg.Address = addr
	}
	return NewGrpcClientWithConfig(cfg, logger)
}

// NewGrpcClientWithConfig connects to the sidecar and waits until it is ready.
func NewGrpcClientWithConfig(cfg GrpcClientConfig, logger *slog.Logger) (*GrpcClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	kacp := keepalive.ClientParameters{
		Time:                cfg.KeepaliveTime,
		Timeout:             cfg.KeepaliveTimeout,
		PermitWithoutStream: false,
	}
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(kacp),
	}, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to reflection sidecar at %s: %w", cfg.Address, err)
	}

	// Fail fast on a bad sidecar address instead of on the first completion.
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := waitForReady(connectCtx, conn); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Warn("failed to close gRPC connection after readiness failure", "error", closeErr)
		}
		return nil, fmt.Errorf("reflection sidecar at %s not ready: %w", cfg.Address, err)
	}

	logger.Info("Connected to reflection sidecar", "address", cfg.Address)
	return &GrpcClient{conn: conn, addr: cfg.Address, logger: logger}, nil
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Idle:
			conn.Connect()
		case connectivity.Shutdown:
			return errConnectionShutdown
		}

		if !conn.WaitForStateChange(ctx, state) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w from %s", errConnectionStateUnchanged, state)
		}
	}
}

// Generate implements Backend.
func (c *GrpcClient) Generate(ctx context.Context, req Request, prompt string) (string, error) {
	in, err := structpb.NewStruct(map[string]any{
		"goal_text":  req.GoalText,
		"category":   string(req.Category),
		"reflection": req.Reflection,
		"prompt":     prompt,
	})
	if err != nil {
		return "", fmt.Errorf("build sidecar request: %w", err)
	}

	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, respondMethod, in, out); err != nil {
		return "", fmt.Errorf("sidecar respond: %w", err)
	}
	return out.GetValue(), nil
}

// Name implements Backend.
func (c *GrpcClient) Name() string {
	return "grpc:" + c.addr
}

// Close releases the connection.
func (c *GrpcClient) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("close sidecar connection: %w", err)
	}
	return nil
}
