// Package lambdautils provides helpers for inspecting the aws lambda
// execution environment of the current invocation.
package lambdautils

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

// Metadata describes the lambda execution environment of the current
// invocation.
type Metadata struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	RequestID       string
}

// FromContext returns Metadata for the current invocation. Fields the runtime
// did not provide are left zero, so this is safe to call outside a lambda as
// well.
func FromContext(ctx context.Context) Metadata {
	md := Metadata{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		md.RequestID = lc.AwsRequestID
	}

	return md
}

// Fields renders the metadata as zap fields for structured logs.
func (md Metadata) Fields() []zap.Field {
	return []zap.Field{
		zap.String("function_name", md.FunctionName),
		zap.String("function_version", md.FunctionVersion),
		zap.String("request_id", md.RequestID),
	}
}
