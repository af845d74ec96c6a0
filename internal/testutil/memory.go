// Package testutil repositorios en memoria para tests de casos de uso.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	mu   sync.Mutex
	rows map[string]entity.Client
	Err  error // si no es nil, todas las operaciones fallan con Err
}

func NewClientRepo() *ClientRepo { return &ClientRepo{rows: map[string]entity.Client{}} }

func (r *ClientRepo) Create(c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) ListByUser(userID string) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.Client
	for _, c := range r.rows {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClientRepo) Update(c *entity.Client) error { return r.Create(c) }

func (r *ClientRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return r.Err
}

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	mu   sync.Mutex
	rows map[string]entity.Company
	seq  int // orden de creación
	ord  map[string]int
}

func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{rows: map[string]entity.Company{}, ord: map[string]int{}}
}

func (r *CompanyRepo) Create(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.ord[c.ID] = r.seq
	r.rows[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetPrimary(userID string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.UserID == userID && c.IsPrimary {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) ListByUser(userID string) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.rows {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return r.ord[out[i].ID] < r.ord[out[j].ID]
	})
	return out, nil
}

func (r *CompanyRepo) Update(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.rows[c.ID]
	if !ok {
		return nil
	}
	upd := *c
	upd.IsPrimary = prev.IsPrimary
	r.rows[c.ID] = upd
	return nil
}

func (r *CompanyRepo) SetPrimary(userID, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.rows[companyID]
	if !ok || target.UserID != userID {
		return domain.ErrNotFound
	}
	for id, c := range r.rows {
		if c.UserID == userID {
			c.IsPrimary = id == companyID
			r.rows[id] = c
		}
	}
	return nil
}

func (r *CompanyRepo) NextInvoiceNumber(companyID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[companyID]
	if !ok {
		return "", domain.ErrNotFound
	}
	n := c.NextInvoiceNumber
	c.NextInvoiceNumber++
	r.rows[companyID] = c
	return entity.FormatInvoiceNumber(c.InvoicePrefix, n), nil
}

func (r *CompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

// InvoiceRepo facturas en memoria; ListByUser devuelve las más recientes primero (CreatedAt).
type InvoiceRepo struct {
	mu   sync.Mutex
	rows map[string]entity.Invoice
	Err  error
}

func NewInvoiceRepo() *InvoiceRepo { return &InvoiceRepo{rows: map[string]entity.Invoice{}} }

func cloneInvoice(inv entity.Invoice) *entity.Invoice {
	inv.Items = append([]entity.LineItem{}, inv.Items...)
	return &inv
}

func assignItems(invoiceID string, items []entity.LineItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].InvoiceID = invoiceID
		items[i].Position = i
	}
}

func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, other := range r.rows {
		if other.UserID == inv.UserID && other.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	assignItems(inv.ID, inv.Items)
	r.rows[inv.ID] = *cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	prev, ok := r.rows[inv.ID]
	if !ok {
		return nil
	}
	upd := *inv
	upd.Items = prev.Items
	r.rows[inv.ID] = upd
	return nil
}

func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []entity.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[invoiceID]
	if !ok {
		return nil
	}
	assignItems(invoiceID, items)
	inv.Items = append([]entity.LineItem{}, items...)
	r.rows[invoiceID] = inv
	return nil
}

func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	inv, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r *InvoiceRepo) GetByNumber(userID, number string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.rows {
		if inv.UserID == userID && inv.InvoiceNumber == number {
			return cloneInvoice(inv), nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) ListByUser(userID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.Invoice
	for _, inv := range r.rows {
		if inv.UserID != userID || (filter.Status != "" && inv.Status != filter.Status) {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InvoiceRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

// Len cantidad de facturas guardadas.
func (r *InvoiceRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	mu   sync.Mutex
	rows map[string]entity.User
}

func NewUserRepo() *UserRepo { return &UserRepo{rows: map[string]entity.User{}} }

func (r *UserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.rows {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.rows[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[u.ID] = *u
	return nil
}

// TxRunner ejecuta los callbacks sobre los mismos repos en memoria (sin rollback).
type TxRunner struct {
	Invoices  *InvoiceRepo
	Companies *CompanyRepo
	Calls     int
}

func (t *TxRunner) RunInvoice(_ context.Context, fn func(repository.InvoiceRepository, repository.CompanyRepository) error) error {
	t.Calls++
	return fn(t.Invoices, t.Companies)
}

func (t *TxRunner) RunCompany(_ context.Context, fn func(repository.CompanyRepository) error) error {
	t.Calls++
	return fn(t.Companies)
}

// Invalidator registra los usuarios invalidados.
type Invalidator struct {
	mu    sync.Mutex
	Users []string
}

func (i *Invalidator) Invalidate(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Users = append(i.Users, userID)
}

// Count veces que se invalidó userID.
func (i *Invalidator) Count(userID string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	n := 0
	for _, u := range i.Users {
		if u == userID {
			n++
		}
	}
	return n
}
