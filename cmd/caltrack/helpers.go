package caltrack

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saadjs/caltrack/internal/app"
	"github.com/saadjs/caltrack/internal/db"
	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/service"
	"github.com/saadjs/caltrack/internal/tui"
)

// withDB opens and migrates the configured database and applies the stored
// locale preference before calling run.
func withDB(cmd *cobra.Command, run func(ctx context.Context, sqldb *sql.DB) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := rt.cfg.DBPath
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.Migrate(ctx, sqldb); err != nil {
		return err
	}
	if !rt.localeFlag {
		applyStoredLocale(ctx, sqldb)
	}
	return run(ctx, sqldb)
}

func applyStoredLocale(ctx context.Context, sqldb *sql.DB) {
	locale, ok, err := service.GetConfig(ctx, sqldb, model.PrefLocale)
	if err != nil || !ok {
		return
	}
	tr, err := i18n.New(locale)
	if err != nil {
		rt.log.Warn(ctx, "ignoring stored locale", "locale", locale, "err", err)
		return
	}
	rt.tr = tr
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// colorEnabled reports whether w is a terminal, so band colours are only
// emitted for interactive output.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func bandLabel(w io.Writer, b nutrition.Band) string {
	word := rt.tr.Word(string(b))
	if !colorEnabled(w) {
		return word
	}
	return tui.BandStyle(b).Render(word)
}

func readFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}
