package rpc

import (
	"context"
	"crypto/subtle"
	"net"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/validation"
)

type BookmarksServerImpl struct {
	service *service.Bookmarks
	cfg     *config.Config
	logger  *zap.SugaredLogger
}

var _ BookmarksServer = (*BookmarksServerImpl)(nil)

func NewBookmarksServer(svc *service.Bookmarks, cfg *config.Config, logger *zap.SugaredLogger) *BookmarksServerImpl {
	return &BookmarksServerImpl{
		service: svc,
		cfg:     cfg,
		logger:  logger,
	}
}

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, impl *BookmarksServerImpl, logger *zap.SugaredLogger) *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(AuthInterceptor(cfg.APIToken)))
	RegisterBookmarksServer(grpcServer, impl)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := cfg.Host + ":" + cfg.GRPCPort
			lis, err := net.Listen("tcp", listen)
			if err != nil {
				return errors.Wrap(err, "failed to listen")
			}
			go func() {
				if err := grpcServer.Serve(lis); err != nil {
					logger.Errorw("grpc server stopped", "error", err)
				}
			}()
			logger.Infow("GRPC server started", "address", listen)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			grpcServer.GracefulStop()
			return nil
		},
	})

	return grpcServer
}

// AuthInterceptor requires "authorization: Bearer <token>" metadata on every call.
func AuthInterceptor(token string) grpc.UnaryServerInterceptor {
	expected := []byte(token)
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		for _, v := range md.Get("authorization") {
			key := strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
			if subtle.ConstantTimeCompare([]byte(key), expected) == 1 {
				return handler(ctx, req)
			}
		}
		return nil, status.Error(codes.Unauthenticated, "Unauthorized request")
	}
}

func (s *BookmarksServerImpl) ListBookmarks(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	bookmarks, err := s.service.List(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	values := make([]interface{}, len(bookmarks))
	for i := range bookmarks {
		values[i] = toMap(bookmarks[i])
	}
	out, err := structpb.NewList(values)
	if err != nil {
		return nil, s.toStatus(errors.Wrap(err, "encode bookmarks"))
	}
	return out, nil
}

func (s *BookmarksServerImpl) GetBookmark(ctx context.Context, in *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	b, err := s.service.Get(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.toStruct(b)
}

func (s *BookmarksServerImpl) CreateBookmark(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	b, err := s.service.Create(ctx, in.AsMap())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.toStruct(b)
}

func (s *BookmarksServerImpl) DeleteBookmark(ctx context.Context, in *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	if err := s.service.Delete(ctx, in.GetValue()); err != nil {
		return nil, s.toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *BookmarksServerImpl) toStruct(b models.Bookmark) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(toMap(b))
	if err != nil {
		return nil, s.toStatus(errors.Wrap(err, "encode bookmark"))
	}
	return out, nil
}

func (s *BookmarksServerImpl) toStatus(err error) error {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		return status.Error(codes.InvalidArgument, vErr.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, service.NotFoundMessage)
	default:
		s.logger.Errorw("rpc failed", "error", err)
		if s.cfg.IsProduction() {
			return status.Error(codes.Internal, "server error")
		}
		return status.Error(codes.Internal, err.Error())
	}
}

func toMap(b models.Bookmark) map[string]interface{} {
	return map[string]interface{}{
		"id":          b.ID,
		"title":       b.Title,
		"url":         b.URL,
		"description": b.Description,
		"rating":      b.Rating,
	}
}
