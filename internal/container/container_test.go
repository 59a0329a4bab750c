package container

import (
	"bytes"
	"context"
	"testing"

	"sheetops/app"
	"sheetops/internal/config"
	"sheetops/internal/errors"
	"sheetops/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(nil, &bytes.Buffer{})
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Fuzzy.Cutoff = 101
	_, err = New(cfg, &bytes.Buffer{})
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestContainerRunsWalkthroughs(t *testing.T) {
	kit, err := testkit.NewTestKit(t.TempDir(), testkit.DefaultSalesConfig())
	require.NoError(t, err)
	cfg := kit.Config()
	cfg.LogLevel = "ERROR"

	var out bytes.Buffer
	c, err := New(cfg, &out)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Combine.Run(ctx, app.CombineRequest{})
	require.NoError(t, err)
	_, err = c.ExcelTasks.Run(ctx)
	require.NoError(t, err)
	_, err = c.Filter.Run(ctx, app.DefaultFilterRequest())
	require.NoError(t, err)
	_, err = c.DTypes.Run(ctx)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Sales by state")
}
