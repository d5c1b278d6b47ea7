// Package jsonfile implements the persistence contract over a single JSON
// document on disk.
//
// Every operation runs a full load → normalize → mutate → persist cycle under
// one in-process writer mutex, and reads re-load from disk every time, so a
// single process always observes its own writes. There is no cross-process
// isolation: two processes racing on the same file are last-write-wins. That
// limitation is accepted for development and small single-host deployments;
// anything busier belongs on the postgres backend.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ops-backend/internal/auth"
	"ops-backend/internal/metrics"
	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

// document is the entire database. The whole thing is read and written as a
// unit; collections stay non-nil after normalize so marshaling is stable.
type document struct {
	Users                []*models.User                `json:"users"`
	Suppliers            []*models.Supplier            `json:"suppliers"`
	SupplierTransactions []*models.SupplierTransaction `json:"supplier_transactions"`
	Employees            []*models.Employee            `json:"employees"`
	Attendance           []*models.AttendanceRecord    `json:"attendance"`
	SalaryAdvances       []*models.SalaryAdvance       `json:"salary_advances"`
	SalaryLedgers        []*models.SalaryLedger        `json:"salary_ledgers"`
	Trucks               []*models.Truck               `json:"trucks"`
	Expenses             []*models.Expense             `json:"expenses"`
	Investments          []*models.Investment          `json:"investments"`
	ChiniExpenses        []*models.ChiniExpense        `json:"chini_expenses"`
	LandRecords          []*models.LandRecord          `json:"land_records"`
	Vehicles             []*models.Vehicle             `json:"vehicles"`
	BillingCompanies     []*models.BillingCompany      `json:"billing_companies"`
	Bills                []*models.Bill                `json:"bills"`
}

type Store struct {
	path string
	deps store.Deps
	log  zerolog.Logger

	// mu serializes every load-mutate-persist cycle in this process
	mu sync.Mutex
}

// New opens (or creates) the document at path and seeds default users
func New(path string, deps store.Deps, log zerolog.Logger) (*Store, error) {
	s := &Store{
		path: path,
		deps: deps.WithDefaults(),
		log:  log.With().Str("backend", "jsonfile").Logger(),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, store.Storagef("init", err)
	}

	// First cycle creates the file and backfills missing collections/users
	err := s.write("init", func(doc *document) error { return nil })
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("path", path).Msg("file store ready")
	return s, nil
}

// Close is a no-op; nothing is held open between operations
func (s *Store) Close() error { return nil }

func (s *Store) now() time.Time { return s.deps.Clock().UTC() }

// load reads and normalizes the whole document. A missing file is an empty
// database, not an error.
func (s *Store) load() (*document, error) {
	doc := &document{}
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fresh database
	case err != nil:
		return nil, err
	default:
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, doc); err != nil {
				return nil, fmt.Errorf("corrupt document %s: %w", s.path, err)
			}
		}
	}
	s.normalize(doc)
	return doc, nil
}

// normalize backfills the shape of older documents: nil collections become
// empty ones and the default users appear if the users collection is empty.
func (s *Store) normalize(doc *document) {
	if doc.Users == nil {
		doc.Users = []*models.User{}
	}
	if doc.Suppliers == nil {
		doc.Suppliers = []*models.Supplier{}
	}
	if doc.SupplierTransactions == nil {
		doc.SupplierTransactions = []*models.SupplierTransaction{}
	}
	if doc.Employees == nil {
		doc.Employees = []*models.Employee{}
	}
	if doc.Attendance == nil {
		doc.Attendance = []*models.AttendanceRecord{}
	}
	if doc.SalaryAdvances == nil {
		doc.SalaryAdvances = []*models.SalaryAdvance{}
	}
	if doc.SalaryLedgers == nil {
		doc.SalaryLedgers = []*models.SalaryLedger{}
	}
	if doc.Trucks == nil {
		doc.Trucks = []*models.Truck{}
	}
	if doc.Expenses == nil {
		doc.Expenses = []*models.Expense{}
	}
	if doc.Investments == nil {
		doc.Investments = []*models.Investment{}
	}
	if doc.ChiniExpenses == nil {
		doc.ChiniExpenses = []*models.ChiniExpense{}
	}
	if doc.LandRecords == nil {
		doc.LandRecords = []*models.LandRecord{}
	}
	if doc.Vehicles == nil {
		doc.Vehicles = []*models.Vehicle{}
	}
	if doc.BillingCompanies == nil {
		doc.BillingCompanies = []*models.BillingCompany{}
	}
	if doc.Bills == nil {
		doc.Bills = []*models.Bill{}
	}
	if len(doc.Users) == 0 {
		s.seedUsers(doc)
	}
}

// defaultUsers are created on first init so a fresh deployment can log in
var defaultUsers = []struct {
	Username string
	Name     string
	Role     string
	Password string
}{
	{Username: "admin", Name: "Administrator", Role: "admin", Password: "admin123"},
	{Username: "munshi", Name: "Munshi", Role: "munshi", Password: "munshi123"},
}

func (s *Store) seedUsers(doc *document) {
	now := s.now()
	for _, d := range defaultUsers {
		hash, err := auth.HashPassword(d.Password)
		if err != nil {
			s.log.Warn().Err(err).Str("username", d.Username).Msg("failed to hash seed password")
			continue
		}
		doc.Users = append(doc.Users, &models.User{
			ID:           s.deps.NewID(),
			Username:     d.Username,
			Name:         d.Name,
			Role:         d.Role,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	s.log.Info().Int("count", len(doc.Users)).Msg("seeded default users")
}

// persist writes the document atomically: marshal to a temp file in the same
// directory, then rename over the target.
func (s *Store) persist(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ops-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	metrics.DocumentBytes.Set(float64(len(data)))
	return nil
}

// read runs fn over a fresh snapshot without persisting
func (s *Store) read(op string, fn func(doc *document) error) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err == nil {
		err = fn(doc)
	}
	err = store.Storagef(op, err)
	metrics.ObserveOp("jsonfile", op, start, err)
	return err
}

// write runs fn over a fresh snapshot and persists the result. If fn fails
// nothing is written, so multi-row mutations are atomic by construction.
func (s *Store) write(op string, fn func(doc *document) error) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err == nil {
		err = fn(doc)
	}
	if err == nil {
		err = s.persist(doc)
	}
	err = store.Storagef(op, err)
	metrics.ObserveOp("jsonfile", op, start, err)
	return err
}
