package socketio_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/adapterhub/internal/testutil"
	"github.com/vk/adapterhub/modules/socketio"
)

func TestDeclaration(t *testing.T) {
	t.Parallel()

	reg := testutil.NewRegistry(t, &socketio.Module{})

	version, err := reg.Version("socketio")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", version)

	methods, err := reg.MethodNames("socketio")
	require.NoError(t, err)
	assert.Equal(t, []string{"Emit", "Request"}, methods)
}

// Exercising a live Socket.IO round trip needs a server; here we only verify
// the failure contract against an address nothing listens on.
func TestDispatchFailureContainment(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := testutil.NewRegistry(t, &socketio.Module{})

	_, ok := reg.Invoke(ctx, "socketio", "Emit", "http://127.0.0.1:1/socket.io", "ping", map[string]any{"n": 1}, "500ms")
	assert.False(t, ok)

	_, ok = reg.Invoke(ctx, "socketio", "Request", "http://127.0.0.1:1/socket.io", "ping", "", map[string]any{}, "500ms")
	assert.False(t, ok, "Request requires a non-empty onEvent")
}
