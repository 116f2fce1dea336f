package sellerreports

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
)

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()

	repo := &stubRepo{bySeller: make(map[uuid.UUID]*models.SellerReport)}
	service, err := NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return service, repo
}

func TestApplySettlementCreatesReportOnFirstOrder(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	sellerID := uuid.New()
	order := &models.Order{
		ID:                     uuid.New(),
		SellerID:               sellerID,
		TotalSellingPriceCents: 3200,
		TotalItems:             3,
	}

	report, err := service.ApplySettlement(context.Background(), nil, order)
	if err != nil {
		t.Fatalf("apply settlement: %v", err)
	}
	if report.TotalOrders != 1 {
		t.Fatalf("total orders: %d", report.TotalOrders)
	}
	if report.TotalEarningsCents != 3200 {
		t.Fatalf("earnings: %d", report.TotalEarningsCents)
	}
	if report.TotalSalesCount != 3 {
		t.Fatalf("sales count: %d", report.TotalSalesCount)
	}
	if repo.bySeller[sellerID] == nil {
		t.Fatalf("report not persisted")
	}
}

func TestApplySettlementAccumulates(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	sellerID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := service.ApplySettlement(context.Background(), nil, &models.Order{
			ID:                     uuid.New(),
			SellerID:               sellerID,
			TotalSellingPriceCents: 1000,
			TotalItems:             1,
		}); err != nil {
			t.Fatalf("apply settlement: %v", err)
		}
	}

	report, err := service.GetBySeller(context.Background(), sellerID)
	if err != nil {
		t.Fatalf("get by seller: %v", err)
	}
	if report.TotalOrders != 3 || report.TotalEarningsCents != 3000 || report.TotalSalesCount != 3 {
		t.Fatalf("unexpected counters: %+v", report)
	}
}

func TestApplyCancellationLeavesEarningsUntouched(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	sellerID := uuid.New()
	order := &models.Order{
		ID:                     uuid.New(),
		SellerID:               sellerID,
		TotalSellingPriceCents: 4500,
		TotalItems:             2,
	}

	if _, err := service.ApplySettlement(context.Background(), nil, order); err != nil {
		t.Fatalf("apply settlement: %v", err)
	}
	report, err := service.ApplyCancellation(context.Background(), nil, order)
	if err != nil {
		t.Fatalf("apply cancellation: %v", err)
	}

	if report.CanceledOrders != 1 {
		t.Fatalf("canceled orders: %d", report.CanceledOrders)
	}
	if report.TotalRefundsCents != 4500 {
		t.Fatalf("refunds: %d", report.TotalRefundsCents)
	}
	if report.TotalEarningsCents != 4500 {
		t.Fatalf("earnings must not shrink on cancellation: %d", report.TotalEarningsCents)
	}
	if report.TotalOrders != 1 {
		t.Fatalf("total orders must not shrink: %d", report.TotalOrders)
	}
}

func TestGetBySellerReturnsZeroReport(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	sellerID := uuid.New()

	report, err := service.GetBySeller(context.Background(), sellerID)
	if err != nil {
		t.Fatalf("get by seller: %v", err)
	}
	if report.SellerID != sellerID {
		t.Fatalf("seller id mismatch")
	}
	if report.TotalOrders != 0 || report.TotalEarningsCents != 0 {
		t.Fatalf("expected zero counters: %+v", report)
	}
}

type stubRepo struct {
	bySeller map[uuid.UUID]*models.SellerReport
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error) {
	if report, ok := s.bySeller[sellerID]; ok {
		return report, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindBySellerForUpdate(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error) {
	return s.FindBySeller(ctx, sellerID)
}

func (s *stubRepo) Create(ctx context.Context, report *models.SellerReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	s.bySeller[report.SellerID] = report
	return nil
}

func (s *stubRepo) Save(ctx context.Context, report *models.SellerReport) error {
	s.bySeller[report.SellerID] = report
	return nil
}
