package jsonfile

import (
	"context"
	"sort"

	"ops-backend/internal/ledger"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

func (s *Store) CreateSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	sup := &models.Supplier{
		ID:             s.deps.NewID(),
		Name:           req.Name,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Email:          req.Email,
		GSTNo:          req.GSTNo,
		Address:        req.Address,
		MaterialType:   req.MaterialType,
		PaymentTerms:   req.PaymentTerms,
		OpeningBalance: req.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.write("CreateSupplier", func(doc *document) error {
		doc.Suppliers = append(doc.Suppliers, sup)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	var out []*models.Supplier
	err := s.read("ListSuppliers", func(doc *document) error {
		out = make([]*models.Supplier, 0, len(doc.Suppliers))
		for _, sup := range doc.Suppliers {
			c := *sup
			out = append(out, &c)
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}

	var out *models.Supplier
	err := s.read("GetSupplier", func(doc *document) error {
		sup := findSupplier(doc, id)
		if sup == nil {
			return store.NotFound("supplier", id)
		}
		c := *sup
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	if err := store.CheckID("id", id); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	var out *models.Supplier
	err := s.write("UpdateSupplier", func(doc *document) error {
		sup := findSupplier(doc, id)
		if sup == nil {
			return store.NotFound("supplier", id)
		}
		sup.Name = req.Name
		sup.Phone = req.Phone
		sup.AlternatePhone = req.AlternatePhone
		sup.Email = req.Email
		sup.GSTNo = req.GSTNo
		sup.Address = req.Address
		sup.MaterialType = req.MaterialType
		sup.PaymentTerms = req.PaymentTerms
		sup.OpeningBalance = req.OpeningBalance
		sup.UpdatedAt = s.now()
		c := *sup
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	return s.write("DeleteSupplier", func(doc *document) error {
		if findSupplier(doc, id) == nil {
			return store.NotFound("supplier", id)
		}
		kept := doc.Suppliers[:0]
		for _, sup := range doc.Suppliers {
			if sup.ID != id {
				kept = append(kept, sup)
			}
		}
		doc.Suppliers = kept

		// cascade: the supplier's transactions go with it
		keptTx := doc.SupplierTransactions[:0]
		for _, tx := range doc.SupplierTransactions {
			if tx.SupplierID != id {
				keptTx = append(keptTx, tx)
			}
		}
		doc.SupplierTransactions = keptTx
		return nil
	})
}

func (s *Store) RecordDelivery(ctx context.Context, supplierID string, req *models.RecordDeliveryRequest) (*store.DeliveryResult, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	truck := &models.SupplierTransaction{
		ID:          s.deps.NewID(),
		SupplierID:  supplierID,
		Date:        req.Date,
		Type:        models.SupplierTxTruck,
		Amount:      req.Amount,
		TruckNumber: req.TruckNumber,
		ChallanNo:   req.ChallanNo,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		PaidNow:     req.PaidNow,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result := &store.DeliveryResult{Truck: truck}
	if req.PaidNow > 0 {
		result.AutoPayment = &models.SupplierTransaction{
			ID:                  s.deps.NewID(),
			SupplierID:          supplierID,
			Date:                req.Date,
			Type:                models.SupplierTxPayment,
			Amount:              req.PaidNow,
			PaymentMode:         req.PaymentMode,
			PaymentRef:          req.PaymentRef,
			IsAutoPayment:       true,
			LinkedTransactionID: truck.ID,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}

	// Both rows land in one persist, so the pair is atomic
	err := s.write("RecordDelivery", func(doc *document) error {
		if findSupplier(doc, supplierID) == nil {
			return store.NotFound("supplier", supplierID)
		}
		doc.SupplierTransactions = append(doc.SupplierTransactions, truck)
		if result.AutoPayment != nil {
			doc.SupplierTransactions = append(doc.SupplierTransactions, result.AutoPayment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) RecordSupplierPayment(ctx context.Context, supplierID string, req *models.RecordSupplierPaymentRequest) (*models.SupplierTransaction, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}
	if err := store.CheckRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	tx := &models.SupplierTransaction{
		ID:          s.deps.NewID(),
		SupplierID:  supplierID,
		Date:        req.Date,
		Type:        models.SupplierTxPayment,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		PaymentRef:  req.PaymentRef,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.write("RecordSupplierPayment", func(doc *document) error {
		if findSupplier(doc, supplierID) == nil {
			return store.NotFound("supplier", supplierID)
		}
		doc.SupplierTransactions = append(doc.SupplierTransactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Store) ListSupplierTransactions(ctx context.Context, supplierID string) ([]*models.SupplierTransaction, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}

	var out []*models.SupplierTransaction
	err := s.read("ListSupplierTransactions", func(doc *document) error {
		if findSupplier(doc, supplierID) == nil {
			return store.NotFound("supplier", supplierID)
		}
		out = supplierTransactions(doc, supplierID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSupplierTransaction(ctx context.Context, id string) error {
	if err := store.CheckID("id", id); err != nil {
		return err
	}

	return s.write("DeleteSupplierTransaction", func(doc *document) error {
		var target *models.SupplierTransaction
		for _, tx := range doc.SupplierTransactions {
			if tx.ID == id {
				target = tx
				break
			}
		}
		if target == nil {
			return store.NotFound("supplier transaction", id)
		}

		// A linked pair leaves together, whichever side was asked for
		drop := map[string]bool{target.ID: true}
		if target.LinkedTransactionID != "" {
			drop[target.LinkedTransactionID] = true
		}
		for _, tx := range doc.SupplierTransactions {
			if tx.LinkedTransactionID == target.ID {
				drop[tx.ID] = true
			}
		}

		kept := doc.SupplierTransactions[:0]
		for _, tx := range doc.SupplierTransactions {
			if !drop[tx.ID] {
				kept = append(kept, tx)
			}
		}
		doc.SupplierTransactions = kept
		return nil
	})
}

func (s *Store) SupplierStatement(ctx context.Context, supplierID string) (*store.SupplierStatement, error) {
	if err := store.CheckID("supplier_id", supplierID); err != nil {
		return nil, err
	}

	var stmt *store.SupplierStatement
	err := s.read("SupplierStatement", func(doc *document) error {
		sup := findSupplier(doc, supplierID)
		if sup == nil {
			return store.NotFound("supplier", supplierID)
		}
		txs := supplierTransactions(doc, supplierID)
		rows := ledger.WithBalances(sup.OpeningBalance, txs)
		stmt = &store.SupplierStatement{
			Supplier: *sup,
			Rows:     ledger.DisplayOrder(rows),
			Summary:  ledger.Summarize(sup, txs),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func findSupplier(doc *document, id string) *models.Supplier {
	for _, sup := range doc.Suppliers {
		if sup.ID == id {
			return sup
		}
	}
	return nil
}

// supplierTransactions copies a supplier's rows in chronological order
func supplierTransactions(doc *document, supplierID string) []*models.SupplierTransaction {
	var txs []*models.SupplierTransaction
	for _, tx := range doc.SupplierTransactions {
		if tx.SupplierID == supplierID {
			c := *tx
			txs = append(txs, &c)
		}
	}
	return ledger.Chronological(txs)
}
