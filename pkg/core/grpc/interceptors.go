// File: interceptors.go
// Title: gRPC Error Enhancement Interceptors
// Description: Server interceptors that turn handler failures and panics
//              into enhanced errors, so clients receive a status code and
//              ErrorInfo derived from the error category, and that
//              propagate request IDs.
// Author: msto63
// Version: v0.2.1
// Created: 2025-12-01
// Modified: 2026-10-16
//
// Change History:
// - 2025-12-01 v0.1.0: Recovery, logging and request ID interceptors
// - 2026-10-16 v0.2.0: Enhanced error translation through a Factory
// - 2026-10-16 v0.2.1: Check panic error tagging

package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/enhanced"
	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
)

// Context keys for request metadata
type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader string     = "x-request-id"
)

// PanicName is the name of errors created from recovered panics
const PanicName = "PanicError"

// RecoveryInterceptor recovers from panics in handlers and answers with an
// internal, critical enhanced error
func RecoveryInterceptor(f *enhanced.Factory) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				e, buildErr := panicError(f, r)
				if buildErr != nil {
					f.Logger().ErrorWithErr("gRPC panic recovered", buildErr, log.Fields{
						"method": info.FullMethod,
						"panic":  fmt.Sprint(r),
					})
					err = status.Errorf(codes.Internal, "panic: %v", r)
					return
				}
				annotate(ctx, e, info.FullMethod)

				f.Logger().Error("gRPC panic recovered", log.Fields{
					"method":     info.FullMethod,
					"request_id": GetRequestID(ctx),
					"error_id":   e.ID(),
					"panic":      fmt.Sprint(r),
				})
				err = e
			}
		}()
		return handler(ctx, req)
	}
}

// panicError builds the enhanced error answered for a recovered panic
func panicError(f *enhanced.Factory, r any) (*enhanced.Error, error) {
	e := f.New(PanicName, fmt.Sprint(r))
	if _, err := e.SetCategory(identifiers.CategoryInternal); err != nil {
		return nil, err
	}
	if _, err := e.SetSeverity(identifiers.SeverityCritical); err != nil {
		return nil, err
	}
	return e, nil
}

// ErrorInterceptor wraps plain handler errors into enhanced errors and logs
// every failure. Errors that already carry a gRPC status pass through.
func ErrorInterceptor(f *enhanced.Factory) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var e *enhanced.Error
		if !errors.As(err, &e) {
			if _, ok := status.FromError(err); ok {
				return resp, err
			}
			wrapped, wrapErr := f.Wrap(err, "")
			if wrapErr != nil {
				return resp, err
			}
			e = wrapped
		}
		annotate(ctx, e, info.FullMethod)

		fields := log.Fields{
			"method":     info.FullMethod,
			"request_id": GetRequestID(ctx),
			"code":       e.GRPCCode().String(),
		}
		if e.Identifiers != nil {
			fields["error_id"] = e.ID()
		}
		f.Logger().ErrorWithErr("gRPC request failed", err, fields)

		return resp, e
	}
}

// StreamErrorInterceptor is ErrorInterceptor for streaming handlers
func StreamErrorInterceptor(f *enhanced.Factory) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		unary := ErrorInterceptor(f)
		_, err := unary(ss.Context(), nil, &grpc.UnaryServerInfo{FullMethod: info.FullMethod},
			func(context.Context, interface{}) (interface{}, error) {
				return nil, handler(srv, ss)
			})
		return err
	}
}

// RequestIDInterceptor adds a request ID to the context
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := extractRequestID(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)

		return handler(ctx, req)
	}
}

// annotate records the method and request in the error's event history
func annotate(ctx context.Context, e *enhanced.Error, method string) {
	if e.ApplicationState == nil {
		return
	}
	event := "grpc " + method
	if id := GetRequestID(ctx); id != "" {
		event += " request_id=" + id
	}
	e.AddToEventHistory(event)
	e.InvalidateSnapshot()
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return extractRequestID(ctx)
}

// extractRequestID extracts request ID from incoming metadata
func extractRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(RequestIDHeader)
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
