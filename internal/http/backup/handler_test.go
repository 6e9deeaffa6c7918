package backup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fatura/internal/export"
	"github.com/MrJamesThe3rd/fatura/internal/http/backup"
	"github.com/MrJamesThe3rd/fatura/internal/state"
)

type staticLoader struct {
	st *state.State
}

func (l staticLoader) State(context.Context) (*state.State, error) {
	return l.st, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	st := &state.State{
		Settings: state.Settings{Currency: "EUR", InvoicePrefix: "INV-", NextInvoiceNumber: 1},
	}

	router := chi.NewRouter()
	backup.NewHandler(staticLoader{st: st}, export.NewService()).Routes(router)

	return router
}

func TestDownloadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="fatura_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.json"`), disposition)

	assert.True(t, strings.HasPrefix(rec.Body.String(), "{\n"))
}

func TestDownloadCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "invoiceNumber,"))
}
