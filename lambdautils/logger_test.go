package lambdautils

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	defer clearContext()
	defer SetLogOutput(os.Stdout)

	var buf bytes.Buffer
	SetLogOutput(&buf)

	Logger(prepareContext("create-web-call", "7", "")).Info("web call created", "call_id", "c1")

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "web call created", entry["msg"])
	assert.Equal(t, "create-web-call", entry["function"])
	assert.Equal(t, "7", entry["version"])
	assert.Equal(t, "req-create-web-call-7", entry["request_id"])
	assert.Equal(t, "c1", entry["call_id"])
}

func TestLogger_outsideLambda(t *testing.T) {
	defer clearContext()
	defer SetLogOutput(os.Stdout)

	lambdacontext.FunctionName = ""
	lambdacontext.FunctionVersion = ""

	var buf bytes.Buffer
	SetLogOutput(&buf)

	Logger(context.Background()).Warn("plain")

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "WARN", entry["level"])
	assert.NotContains(t, entry, "function")
	assert.NotContains(t, entry, "request_id")
}
