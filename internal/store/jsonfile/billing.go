package jsonfile

import (
	"context"
	"sort"
	"time"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

func (s *Store) SaveBill(ctx context.Context, req *models.SaveBillRequest) (*models.Bill, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.Bill
	err := s.write("SaveBill", func(doc *document) error {
		for _, b := range doc.Bills {
			if b.InvoiceNo == req.InvoiceNo {
				return &store.ConflictError{Entity: "bill", Reason: "invoice number " + req.InvoiceNo + " already exists"}
			}
		}
		now := s.now()
		company := s.upsertCompany(doc, &req.Company, now)
		bill := &models.Bill{
			ID:        s.deps.NewID(),
			InvoiceNo: req.InvoiceNo,
			BillDate:  req.BillDate,
			DueDate:   req.DueDate,
			Company:   company,
			Items:     billItems(req.Items),
			CreatedAt: now,
			UpdatedAt: now,
		}
		bill.CalculateTotals()
		doc.Bills = append(doc.Bills, bill)
		c := *bill
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateBill(ctx context.Context, id string, req *models.SaveBillRequest) (*models.Bill, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.Bill
	err := s.write("UpdateBill", func(doc *document) error {
		var bill *models.Bill
		for _, b := range doc.Bills {
			if b.ID == id {
				bill = b
				break
			}
		}
		if bill == nil {
			return store.NotFound("bill", id)
		}
		for _, b := range doc.Bills {
			if b.ID != id && b.InvoiceNo == req.InvoiceNo {
				return &store.ConflictError{Entity: "bill", Reason: "invoice number " + req.InvoiceNo + " already exists"}
			}
		}
		now := s.now()
		bill.InvoiceNo = req.InvoiceNo
		bill.BillDate = req.BillDate
		bill.DueDate = req.DueDate
		bill.Company = s.upsertCompany(doc, &req.Company, now)
		bill.Items = billItems(req.Items)
		bill.UpdatedAt = now
		bill.CalculateTotals()
		c := *bill
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	var out *models.Bill
	err := s.read("GetBill", func(doc *document) error {
		for _, b := range doc.Bills {
			if b.ID == id {
				c := *b
				out = &c
				return nil
			}
		}
		return store.NotFound("bill", id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListBills(ctx context.Context) ([]*models.Bill, error) {
	var out []*models.Bill
	err := s.read("ListBills", func(doc *document) error {
		out = make([]*models.Bill, 0, len(doc.Bills))
		for _, b := range doc.Bills {
			c := *b
			out = append(out, &c)
		}
		sortByDateDesc(out, func(b *models.Bill) (string, time.Time, string) { return b.BillDate, b.CreatedAt, b.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteBill(ctx context.Context, id string) error {
	return s.deleteRow("DeleteBill", "bill", id, func(doc *document) bool {
		kept := doc.Bills[:0]
		found := false
		for _, b := range doc.Bills {
			if b.ID == id {
				found = true
				continue
			}
			kept = append(kept, b)
		}
		doc.Bills = kept
		return found
	})
}

func (s *Store) ListBillingCompanies(ctx context.Context) ([]*models.BillingCompany, error) {
	var out []*models.BillingCompany
	err := s.read("ListBillingCompanies", func(doc *document) error {
		out = make([]*models.BillingCompany, 0, len(doc.BillingCompanies))
		for _, c := range doc.BillingCompanies {
			cc := *c
			out = append(out, &cc)
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].GSTIN < out[j].GSTIN
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// upsertCompany registers the bill's company by normalized GSTIN and returns
// the snapshot to embed. A blank GSTIN skips the registry; the bill then
// carries an unregistered snapshot.
func (s *Store) upsertCompany(doc *document, in *models.BillCompanyInput, now time.Time) models.BillingCompany {
	gstin := models.NormalizeGSTIN(in.GSTIN)
	if gstin == "" {
		return models.BillingCompany{
			Name:      in.Name,
			Address:   in.Address,
			State:     in.State,
			StateCode: in.StateCode,
			Phone:     in.Phone,
			Email:     in.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	for _, c := range doc.BillingCompanies {
		if c.GSTIN == gstin {
			// GSTIN is the identity; everything else follows the new bill
			c.Name = in.Name
			c.Address = in.Address
			c.State = in.State
			c.StateCode = in.StateCode
			c.Phone = in.Phone
			c.Email = in.Email
			c.UpdatedAt = now
			return *c
		}
	}

	c := &models.BillingCompany{
		ID:        s.deps.NewID(),
		GSTIN:     gstin,
		Name:      in.Name,
		Address:   in.Address,
		State:     in.State,
		StateCode: in.StateCode,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.BillingCompanies = append(doc.BillingCompanies, c)
	return *c
}

func billItems(in []models.BillItemInput) []models.BillItem {
	items := make([]models.BillItem, 0, len(in))
	for _, it := range in {
		items = append(items, models.BillItem{
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			GSTPercent:  it.GSTPercent,
		})
	}
	return items
}
