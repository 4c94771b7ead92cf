package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "github.com/tenantgate/tenantgate/internal/application/subscription/dto"
	"github.com/tenantgate/tenantgate/internal/application/subscription/usecases"
	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers/testutil"
	"github.com/tenantgate/tenantgate/internal/shared/errors"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTenantUC struct {
	cmd usecases.CreateTenantCommand
	err error
}

func (m *mockCreateTenantUC) Execute(ctx context.Context, cmd usecases.CreateTenantCommand) (*subdto.TenantDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &subdto.TenantDTO{ID: 1, PlanID: cmd.PlanID, Name: cmd.Name, Active: true, PaymentStatus: "active"}, nil
}

type mockTenantByIDUC struct {
	tenantID uint
	status   string
	err      error
}

func (m *mockTenantByIDUC) Execute(ctx context.Context, tenantID uint) (*subdto.TenantDTO, error) {
	m.tenantID = tenantID
	if m.err != nil {
		return nil, m.err
	}
	return &subdto.TenantDTO{ID: tenantID, PaymentStatus: m.status}, nil
}

type mockListTenantsUC struct {
	query usecases.ListTenantsQuery
	err   error
}

func (m *mockListTenantsUC) Execute(ctx context.Context, query usecases.ListTenantsQuery) (*usecases.ListTenantsResult, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return &usecases.ListTenantsResult{
		Tenants:  []*subdto.TenantDTO{{ID: 1}, {ID: 2}},
		Total:    2,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

type mockChangeTenantPlanUC struct {
	cmd usecases.ChangeTenantPlanCommand
}

func (m *mockChangeTenantPlanUC) Execute(ctx context.Context, cmd usecases.ChangeTenantPlanCommand) (*subdto.TenantDTO, error) {
	m.cmd = cmd
	return &subdto.TenantDTO{ID: cmd.TenantID, PlanID: cmd.PlanID}, nil
}

type mockSetTenantActiveUC struct {
	cmd usecases.SetTenantActiveCommand
}

func (m *mockSetTenantActiveUC) Execute(ctx context.Context, cmd usecases.SetTenantActiveCommand) (*subdto.TenantDTO, error) {
	m.cmd = cmd
	return &subdto.TenantDTO{ID: cmd.TenantID, Active: cmd.Active}, nil
}

type mockRenewTenantUC struct {
	cmd usecases.RenewTenantCommand
	err error
}

func (m *mockRenewTenantUC) Execute(ctx context.Context, cmd usecases.RenewTenantCommand) (*subdto.TenantDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &subdto.TenantDTO{ID: cmd.TenantID, PaymentStatus: "active"}, nil
}

type mockSummaryUC struct {
	tenantID uint
	err      error
}

func (m *mockSummaryUC) Execute(ctx context.Context, tenantID uint) (*subdto.SubscriptionSummaryDTO, error) {
	m.tenantID = tenantID
	if m.err != nil {
		return nil, m.err
	}
	days := 12
	return &subdto.SubscriptionSummaryDTO{TenantID: tenantID, PlanCode: "B", PaymentStatus: "active", DaysToExpiration: &days}, nil
}

type mockSweepUC struct {
	result *subdto.SweepResultDTO
	err    error
}

func (m *mockSweepUC) Run(ctx context.Context) (*subdto.SweepResultDTO, error) {
	return m.result, m.err
}

type tenantHandlerMocks struct {
	create  *mockCreateTenantUC
	get     *mockTenantByIDUC
	list    *mockListTenantsUC
	plan    *mockChangeTenantPlanUC
	active  *mockSetTenantActiveUC
	renew   *mockRenewTenantUC
	block   *mockTenantByIDUC
	unblock *mockTenantByIDUC
	summary *mockSummaryUC
	sweep   *mockSweepUC
}

func newTestTenantHandler() (*TenantHandler, *tenantHandlerMocks) {
	m := &tenantHandlerMocks{
		create:  &mockCreateTenantUC{},
		get:     &mockTenantByIDUC{status: "active"},
		list:    &mockListTenantsUC{},
		plan:    &mockChangeTenantPlanUC{},
		active:  &mockSetTenantActiveUC{},
		renew:   &mockRenewTenantUC{},
		block:   &mockTenantByIDUC{status: "overdue"},
		unblock: &mockTenantByIDUC{status: "active"},
		summary: &mockSummaryUC{},
		sweep:   &mockSweepUC{result: &subdto.SweepResultDTO{Scanned: 10, Overdue: 2, Pending: 3}},
	}
	h := NewTenantHandler(TenantHandlerDeps{
		CreateTenant:     m.create,
		GetTenant:        m.get,
		ListTenants:      m.list,
		ChangeTenantPlan: m.plan,
		SetTenantActive:  m.active,
		RenewTenant:      m.renew,
		BlockTenant:      m.block,
		UnblockTenant:    m.unblock,
		Summary:          m.summary,
		Sweep:            m.sweep,
	}, logger.NewNop())
	return h, m
}

func rawRequest(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// =====================================================================
// Tests
// =====================================================================

func TestTenantHandler_CreateTenant(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mocks := newTestTenantHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/admin/tenants",
			CreateTenantRequest{Name: "Acme", PlanID: 2, NextPaymentDate: "2026-11-01"})

		handler.CreateTenant(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint(2), mocks.create.cmd.PlanID)
		assert.Equal(t, "2026-11-01", mocks.create.cmd.NextPaymentDate)
		assert.Nil(t, mocks.create.cmd.Active)
	})

	t.Run("plan required", func(t *testing.T) {
		handler, _ := newTestTenantHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/admin/tenants", map[string]string{"name": "Acme"})

		handler.CreateTenant(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown plan", func(t *testing.T) {
		handler, mocks := newTestTenantHandler()
		mocks.create.err = errors.NewNotFoundError("plan not found")
		c, w := testutil.NewTestContext(http.MethodPost, "/admin/tenants", CreateTenantRequest{Name: "Acme", PlanID: 99})

		handler.CreateTenant(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTenantHandler_ListTenants_Filters(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/tenants", nil)
	testutil.SetQueryParams(c, map[string]string{"payment_status": "overdue", "plan_id": "3", "page": "2", "page_size": "10"})

	handler.ListTenants(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "overdue", mocks.list.query.PaymentStatus)
	assert.Equal(t, uint(3), mocks.list.query.PlanID)
	assert.Equal(t, 2, mocks.list.query.Page)
	assert.Equal(t, 10, mocks.list.query.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(2), page.Total)
}

func TestTenantHandler_ListTenants_BadPlanID(t *testing.T) {
	handler, _ := newTestTenantHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/tenants", nil)
	testutil.SetQueryParams(c, map[string]string{"plan_id": "x"})

	handler.ListTenants(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantHandler_RenewTenant_NormalizesInput(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDate   string
		wantMonths int
	}{
		{"numeric months", `{"payment_date":"2026-01-31","duration_months":3}`, "2026-01-31", 3},
		{"string months", `{"duration_months":"6"}`, "", 6},
		{"zero months", `{"duration_months":0}`, "", 1},
		{"garbage months", `{"duration_months":"soon"}`, "", 1},
		{"missing months", `{"payment_date":"yesterday"}`, "yesterday", 1},
		{"numeric payment date", `{"payment_date":20250101,"duration_months":3}`, "", 3},
		{"object payment date", `{"payment_date":{"y":2025},"duration_months":"x"}`, "", 1},
		{"empty body", ``, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := newTestTenantHandler()
			c, w := rawRequest(http.MethodPost, "/admin/tenants/4/renew", tt.body)
			testutil.SetURLParam(c, "id", "4")

			handler.RenewTenant(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, uint(4), mocks.renew.cmd.TenantID)
			assert.Equal(t, tt.wantDate, mocks.renew.cmd.PaymentDate)
			assert.Equal(t, tt.wantMonths, mocks.renew.cmd.DurationMonths)
		})
	}
}

func TestTenantHandler_RenewTenant_ChunkedEmptyBody(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := rawRequest(http.MethodPost, "/admin/tenants/4/renew", "")
	c.Request.ContentLength = -1
	testutil.SetURLParam(c, "id", "4")

	handler.RenewTenant(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), mocks.renew.cmd.TenantID)
	assert.Empty(t, mocks.renew.cmd.PaymentDate)
	assert.Equal(t, 1, mocks.renew.cmd.DurationMonths)
}

func TestTenantHandler_RenewTenant_MalformedJSON(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := rawRequest(http.MethodPost, "/admin/tenants/4/renew", `{"payment_date":`)
	testutil.SetURLParam(c, "id", "4")

	handler.RenewTenant(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mocks.renew.cmd.TenantID)
}

func TestTenantHandler_RenewTenant_NotFound(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	mocks.renew.err = errors.NewNotFoundError("tenant not found")
	c, w := rawRequest(http.MethodPost, "/admin/tenants/4/renew", `{}`)
	testutil.SetURLParam(c, "id", "4")

	handler.RenewTenant(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantHandler_BlockAndUnblock(t *testing.T) {
	handler, mocks := newTestTenantHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/tenants/5/block", nil)
	testutil.SetURLParam(c, "id", "5")
	handler.BlockTenant(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mocks.block.tenantID)
	assert.Zero(t, mocks.unblock.tenantID)

	c, w = testutil.NewTestContext(http.MethodPost, "/admin/tenants/5/unblock", nil)
	testutil.SetURLParam(c, "id", "5")
	handler.UnblockTenant(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mocks.unblock.tenantID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var tenant subdto.TenantDTO
	require.NoError(t, json.Unmarshal(resp.Data, &tenant))
	assert.Equal(t, "active", tenant.PaymentStatus)
}

func TestTenantHandler_SetTenantActive(t *testing.T) {
	handler, mocks := newTestTenantHandler()

	c, w := testutil.NewTestContext(http.MethodPut, "/admin/tenants/5/active", map[string]bool{"active": false})
	testutil.SetURLParam(c, "id", "5")
	handler.SetTenantActive(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mocks.active.cmd.Active)

	c, w = testutil.NewTestContext(http.MethodPut, "/admin/tenants/5/active", map[string]string{})
	testutil.SetURLParam(c, "id", "5")
	handler.SetTenantActive(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantHandler_ChangeTenantPlan(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := testutil.NewTestContext(http.MethodPut, "/admin/tenants/5/plan", ChangeTenantPlanRequest{PlanID: 3})
	testutil.SetURLParam(c, "id", "5")

	handler.ChangeTenantPlan(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.ChangeTenantPlanCommand{TenantID: 5, PlanID: 3}, mocks.plan.cmd)
}

func TestTenantHandler_GetTenantSubscription(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/tenants/8/subscription", nil)
	testutil.SetURLParam(c, "id", "8")

	handler.GetTenantSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(8), mocks.summary.tenantID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var summary subdto.SubscriptionSummaryDTO
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	require.NotNil(t, summary.DaysToExpiration)
	assert.Equal(t, 12, *summary.DaysToExpiration)
}

func TestTenantHandler_RunSweep(t *testing.T) {
	handler, mocks := newTestTenantHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/subscriptions/sweep", nil)

	handler.RunSweep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var sweep SweepResponse
	require.NoError(t, json.Unmarshal(resp.Data, &sweep))
	assert.Equal(t, 5, sweep.Updated)
	assert.Equal(t, 10, sweep.Scanned)

	mocks.sweep.result, mocks.sweep.err = nil, assert.AnError
	c, w = testutil.NewTestContext(http.MethodPost, "/admin/subscriptions/sweep", nil)
	handler.RunSweep(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
