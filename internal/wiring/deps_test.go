package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yalc/internal/app"
	_ "go.trai.ch/yalc/internal/wiring"
)

func TestGraftResolvesComponents(t *testing.T) {
	store := t.TempDir()
	t.Setenv("YALC_STORE_FOLDER", store)
	t.Chdir(t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
}
