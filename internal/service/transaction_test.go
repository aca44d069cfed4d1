package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/repository"
)

func newTransactionService(db *gorm.DB) TransactionService {
	return NewTransactionService(repository.NewTransactionRepository(db))
}

func seedTransactions(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	seedOrderWithStatus(t, db, "ord-1", "school-1", "success", 1000, base)
	seedOrderWithStatus(t, db, "ord-2", "school-1", "pending", 500, base.Add(time.Hour))
	seedOrderWithStatus(t, db, "ord-3", "school-2", "failed", 750, base.Add(2*time.Hour))
	seedOrderWithStatus(t, db, "ord-4", "school-2", "success", 250, base.Add(3*time.Hour))
	// orphan order: no status row
	seedOrderWithStatus(t, db, "ord-5", "school-1", "", 0, base.Add(4*time.Hour))
}

func TestGetTransactionsDefaults(t *testing.T) {
	db := setupTestDB(t)
	seedTransactions(t, db)
	svc := newTransactionService(db)

	resp, err := svc.GetTransactions(context.Background(), &dto.TransactionQuery{})
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}

	if resp.Pagination.Page != 1 || resp.Pagination.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, want 1/10", resp.Pagination.Page, resp.Pagination.Limit)
	}
	if resp.Pagination.Total != 5 || len(resp.Data) != 5 {
		t.Fatalf("total=%d len=%d, want 5 rows including the orphan", resp.Pagination.Total, len(resp.Data))
	}

	// default sort createdAt desc: newest (the orphan) first, status fields nil
	first := resp.Data[0]
	if first.CollectID != "ord-5" {
		t.Errorf("first row = %s, want ord-5", first.CollectID)
	}
	if first.Status != nil || first.OrderAmount != nil {
		t.Error("orphan row should carry nil status fields, not be dropped")
	}
	if first.StudentInfo.Name == "" {
		t.Error("student_info missing from projection")
	}
}

func TestGetTransactionsPaginationInvariants(t *testing.T) {
	db := setupTestDB(t)
	seedTransactions(t, db)
	svc := newTransactionService(db)
	ctx := context.Background()

	var fetched int
	page := 1
	for {
		resp, err := svc.GetTransactions(ctx, &dto.TransactionQuery{Page: page, Limit: 2})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}

		p := resp.Pagination
		if p.Total != 5 || p.TotalPages != 3 {
			t.Errorf("page %d: total=%d totalPages=%d, want 5/3", page, p.Total, p.TotalPages)
		}
		if p.HasNextPage != (page < p.TotalPages) {
			t.Errorf("page %d: hasNextPage = %v", page, p.HasNextPage)
		}
		if p.HasPrevPage != (page > 1) {
			t.Errorf("page %d: hasPrevPage = %v", page, p.HasPrevPage)
		}

		fetched += len(resp.Data)
		if !p.HasNextPage {
			break
		}
		page++
	}

	if fetched != 5 {
		t.Errorf("pages sum to %d rows, want total 5", fetched)
	}
}

func TestGetTransactionsFilterAndSort(t *testing.T) {
	db := setupTestDB(t)
	seedTransactions(t, db)
	svc := newTransactionService(db)

	resp, err := svc.GetTransactions(context.Background(), &dto.TransactionQuery{
		Status: "success",
		Sort:   "createdAt",
		Order:  "asc",
	})
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len = %d, want 2 success rows", len(resp.Data))
	}
	if resp.Data[0].CollectID != "ord-1" || resp.Data[1].CollectID != "ord-4" {
		t.Errorf("asc order = [%s %s]", resp.Data[0].CollectID, resp.Data[1].CollectID)
	}
}

func TestGetTransactionsRejectsBadQuery(t *testing.T) {
	db := setupTestDB(t)
	svc := newTransactionService(db)
	ctx := context.Background()

	bad := []dto.TransactionQuery{
		{Page: -1},
		{Limit: 101},
		{Limit: -2},
		{Sort: "password"},
		{Order: "sideways"},
	}
	for _, query := range bad {
		q := query
		_, err := svc.GetTransactions(ctx, &q)
		var validationErr *apperr.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("query %+v: error = %v, want *apperr.ValidationError", q, err)
		}
	}
}

func TestGetSchoolTransactionsOverridesFilter(t *testing.T) {
	db := setupTestDB(t)
	seedTransactions(t, db)
	svc := newTransactionService(db)

	// the caller tries to peek at another school; the path value wins
	resp, err := svc.GetSchoolTransactions(context.Background(), "school-2", &dto.TransactionQuery{
		SchoolID: "school-1",
	})
	if err != nil {
		t.Fatalf("GetSchoolTransactions: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len = %d, want 2 rows for school-2", len(resp.Data))
	}
	for _, row := range resp.Data {
		if row.SchoolID != "school-2" {
			t.Errorf("row %s has school_id %q", row.CollectID, row.SchoolID)
		}
	}

	if _, err := svc.GetSchoolTransactions(context.Background(), "", &dto.TransactionQuery{}); err == nil {
		t.Error("empty school id must be rejected")
	}
}

func TestGetTransactionStatus(t *testing.T) {
	db := setupTestDB(t)
	seedTransactions(t, db)
	svc := newTransactionService(db)
	ctx := context.Background()

	detail, err := svc.GetTransactionStatus(ctx, "ord-1")
	if err != nil {
		t.Fatalf("GetTransactionStatus: %v", err)
	}
	if detail == nil {
		t.Fatal("detail is nil for an existing order")
	}
	if detail.Status == nil || *detail.Status != "success" {
		t.Errorf("status = %v, want success", detail.Status)
	}
	if detail.CollectID != "ord-1" || detail.CustomOrderID != "ord-1" {
		t.Errorf("ids = %q/%q", detail.CollectID, detail.CustomOrderID)
	}

	// unknown and malformed ids are indistinguishable here: both nil, no error
	for _, id := range []string{"ord-404", "%%%"} {
		detail, err := svc.GetTransactionStatus(ctx, id)
		if err != nil {
			t.Fatalf("GetTransactionStatus(%q): %v", id, err)
		}
		if detail != nil {
			t.Errorf("GetTransactionStatus(%q) = %+v, want nil", id, detail)
		}
	}
}
