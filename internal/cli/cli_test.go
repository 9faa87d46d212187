package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-restaurant-pos/internal/app"
	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const ordersFixture = `[
	{"id":"ORD1","items":[{"name":"Tea","quantity":2,"price":20}],"total":40,"timestamp":"2024-01-10T09:00:00Z","status":"paid","paymentMethod":"confirmed"},
	{"id":"ORD2","items":[{"name":"Biryani","quantity":1,"price":200}],"total":200,"timestamp":"2024-01-09T20:00:00Z","status":"paid","paymentMethod":"confirmed"}
]`

type testEnv struct {
	app *app.App
	out *bytes.Buffer
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ms := memory.New()
	cfg := &config.Config{
		Store:  config.StoreConfig{Driver: "memory"},
		Report: config.ReportConfig{TimeZone: "UTC", Location: time.UTC, WindowMonths: 6},
		Shop:   config.ShopConfig{Name: "Nine Cafe"},
	}
	return &testEnv{
		app: app.NewWithStores(cfg, ms.Orders(), ms.Reports(), ms.Menu(), nil),
		out: &bytes.Buffer{},
		dir: t.TempDir(),
	}
}

// run executes one posctl invocation against the shared in-memory app.
func (e *testEnv) run(args ...string) error {
	e.out.Reset()
	c := NewCLI(Options{
		Open:   func() (*app.App, error) { return e.app, nil },
		Output: e.out,
	})
	c.SetArgs(args)
	return c.Execute()
}

func (e *testEnv) writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(e.dir, "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(ordersFixture), 0o644))
	return path
}

func TestOrdersImport(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("orders", "import", env.writeFixture(t)))
	assert.Equal(t, "imported 2 of 2 orders\n", env.out.String())

	err := env.run("orders", "import", filepath.Join(env.dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReportCommand(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("orders", "import", env.writeFixture(t)))

	require.NoError(t, env.run("report", "--date", "2024-01-10"))
	out := env.out.String()
	assert.Contains(t, out, "Total Sales: ₹240.00")
	assert.Contains(t, out, "Total Orders: 2")
	assert.Less(t, strings.Index(out, "10 Jan 2024"), strings.Index(out, "9 Jan 2024"))

	require.NoError(t, env.run("report", "--date", "2024-01-10", "--format", "json"))
	assert.Contains(t, env.out.String(), `"dailyReports"`)
	assert.Contains(t, env.out.String(), `"avgOrderValue": 120`)

	assert.Error(t, env.run("report", "--format", "yaml"))
	reports, err := env.app.Reports.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestReportsListAndExport(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("orders", "import", env.writeFixture(t)))
	require.NoError(t, env.run("report", "--date", "2024-01-10"))

	reports, err := env.app.Reports.History(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	id := reports[0].ID

	require.NoError(t, env.run("reports", "list"))
	lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], id)
	assert.Contains(t, lines[1], "240.00")

	txt := filepath.Join(env.dir, "report.txt")
	require.NoError(t, env.run("reports", "export", id, "-o", txt))
	body, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Daily Sales Report")

	xlsx := filepath.Join(env.dir, "report.xlsx")
	require.NoError(t, env.run("reports", "export", id, "--format", "xlsx", "-o", xlsx))
	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Daily"}, f.GetSheetList())

	err = env.run("reports", "export", "missing", "-o", txt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archived report with id missing")
}
