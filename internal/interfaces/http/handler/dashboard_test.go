package handler

import (
	"net/http"
	"testing"

	appreport "github.com/fiscalmanager/backend/internal/application/report"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardHandler_Get(t *testing.T) {
	companies := new(testutil.MockCompanyRepository)
	products := new(testutil.MockProductRepository)
	invoices := new(testutil.MockInvoiceRepository)
	recent := sampleInvoices(t)

	companies.On("Count", mock.Anything).Return(int64(2), nil)
	products.On("Count", mock.Anything).Return(int64(5), nil)
	invoices.On("Summarize", mock.Anything, fiscal.InvoiceFilter{}).Return(fiscal.InvoiceSummary{
		Count:  1,
		Totals: recent[0].Totals,
	}, nil)
	invoices.On("FindAll", mock.Anything, fiscal.InvoiceFilter{Limit: appreport.RecentInvoiceLimit}).Return(recent, nil)

	h := NewDashboardHandler(appreport.NewDashboardService(companies, products, invoices, zap.NewNop()))
	r := newTestRouter(true)
	r.GET("/dashboard", h.Get)

	w := perform(t, r, http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeData[appreport.DashboardResponse](t, w)
	assert.Equal(t, int64(2), resp.TotalCompanies)
	assert.Equal(t, int64(5), resp.TotalProducts)
	assert.Equal(t, int64(1), resp.TotalInvoices)
	assert.Equal(t, "2699.70", resp.TotalValue.StringFixed(2))
	assert.Equal(t, "485.95", resp.TotalTaxes.ICMS.StringFixed(2))
	require.Len(t, resp.RecentInvoices, 1)
	assert.Equal(t, "NF-77", resp.RecentInvoices[0].Number)
}
