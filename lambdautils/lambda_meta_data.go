package lambdautils

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaMetaData stored details about the current lambda context.
type LambdaMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	Context         *lambdacontext.LambdaContext
}

// GetLambdaMetaData returns MetaData extracted from the current lambda context.
// Outside of lambda the fields are empty and Context is nil.
func GetLambdaMetaData(ctx context.Context) LambdaMetaData {
	lm := LambdaMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	lm.Context, _ = lambdacontext.FromContext(ctx)
	return lm
}

// RequestID returns the aws request id of the invocation, or "".
func (lm LambdaMetaData) RequestID() string {
	if lm.Context == nil {
		return ""
	}
	return lm.Context.AwsRequestID
}

// LogAttrs returns the non-empty metadata as alternating slog key/values.
func (lm LambdaMetaData) LogAttrs() []any {
	var attrs []any
	if lm.FunctionName != "" {
		attrs = append(attrs, "function", lm.FunctionName)
	}
	if lm.FunctionVersion != "" {
		attrs = append(attrs, "version", lm.FunctionVersion)
	}
	if id := lm.RequestID(); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	return attrs
}
