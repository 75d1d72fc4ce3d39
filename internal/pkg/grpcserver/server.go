// Package grpcserver wraps a grpc.Server with health checking and reflection.
package grpcserver

import (
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	addr   string
	mu     sync.Mutex
	lis    net.Listener
	Server *grpc.Server
	Health *health.Server
}

func New(addr string, opts ...grpc.ServerOption) *Server {
	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return &Server{
		addr:   addr,
		Server: s,
		Health: hs,
	}
}

// Start listens on the configured address and blocks serving requests
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve blocks serving requests on lis
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()
	return s.Server.Serve(lis)
}

func (s *Server) Stop() {
	s.Health.Shutdown()
	s.Server.GracefulStop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
