package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	require.Equal(t, "offer", Identity("offer"))
	require.Equal(t, 42, Identity(42))
}

func TestPrefix(t *testing.T) {
	require.Equal(t, "app:offer", Prefix("app")("offer"))
	require.Equal(t, "offer", Prefix("")("offer"))
}

// TestNamespace_SkipsEmptyParts keeps anonymous users in the app namespace.
func TestNamespace_SkipsEmptyParts(t *testing.T) {
	require.Equal(t, "app:user:offer", Namespace("app", "user")("offer"))
	require.Equal(t, "app:offer", Namespace("app", "")("offer"))
	require.Equal(t, "offer", Namespace()("offer"))
}

// TestHashed_StableAndDistinct verifies the digest is deterministic and collision free for simple inputs.
func TestHashed_StableAndDistinct(t *testing.T) {
	h := Hashed()

	a1, a2, b := h("placement-a"), h("placement-a"), h("placement-b")
	require.Equal(t, a1, a2)
	require.NotEqual(t, a1, b)
	require.Len(t, a1, 32)
}

func TestChain(t *testing.T) {
	tr := Chain(Prefix("app"), nil, Prefix("v2"))
	require.Equal(t, "v2:app:offer", tr("offer"))

	require.Equal(t, "offer", Chain[string]()("offer"))
}
