package service

import (
	"context"

	"rfqengine/cmd/internal/domain/database/repository"
	"rfqengine/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type RequestRepository interface {
	FindAll(filter repository.RequestFilter) ([]*entity.Request, error)
	FindByID(id int64) (*entity.Request, error)
	FindByIDForUpdate(id int64) (*entity.Request, error)
	LatestNumber() (string, error)
	Create(req *entity.Request) error
	Save(req *entity.Request) error
	Delete(id int64) error
}

type RequestLineRepository interface {
	FindByRequest(requestID int64) ([]*entity.RequestLine, error)
	Create(line *entity.RequestLine) error
	Save(line *entity.RequestLine) error
	DeleteByRequest(requestID int64) error
}

type QuoteLogRepository interface {
	Append(entries []*entity.QuoteLogEntry) error
	FindByRequest(requestID int64) ([]*entity.QuoteLogEntry, error)
	DeleteByRequest(requestID int64) error
}

type LeadRepository interface {
	FindAll(stage entity.LeadStage) ([]*entity.Lead, error)
	FindByID(id int64) (*entity.Lead, error)
	FindByRequest(requestID int64) ([]*entity.Lead, error)
	Save(lead *entity.Lead) error
	Delete(lead *entity.Lead) error
	DeleteByRequest(requestID int64) error
}

type CatalogRepository interface {
	FindClient(id int64) (*entity.Client, error)
	FindMaterial(id int64) (*entity.Material, error)
	FindMaterialsInIDs(ids []int64) ([]*entity.Material, error)
	FindSuppliersInIDs(ids []int64) ([]*entity.Supplier, error)
	FindOffers(materialID int64) ([]*entity.MaterialSupplier, error)
	FindSettings() (*entity.Settings, error)
}

type SequenceRepository interface {
	Next(name string, seed func() (int64, error)) (int64, error)
}

// Store hands out repositories bound to one database handle, either the
// shared pool or a running transaction.
type Store interface {
	Requests() RequestRepository
	Lines() RequestLineRepository
	QuoteLog() QuoteLogRepository
	Leads() LeadRepository
	Catalog() CatalogRepository
	Sequences() SequenceRepository

	// WithContext binds every repository call to ctx.
	WithContext(ctx context.Context) Store

	// Transaction runs fn inside one database transaction. Inside fn only
	// the tx store may be used: with a single connection pool, touching the
	// outer store would wait on the transaction forever.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Requests() RequestRepository {
	return repository.NewRequestRepository(s.db)
}

func (s *gormStore) Lines() RequestLineRepository {
	return repository.NewRequestLineRepository(s.db)
}

func (s *gormStore) QuoteLog() QuoteLogRepository {
	return repository.NewQuoteLogRepository(s.db)
}

func (s *gormStore) Leads() LeadRepository {
	return repository.NewLeadRepository(s.db)
}

func (s *gormStore) Catalog() CatalogRepository {
	return repository.NewCatalogRepository(s.db)
}

func (s *gormStore) Sequences() SequenceRepository {
	return repository.NewSequenceRepository(s.db)
}

func (s *gormStore) WithContext(ctx context.Context) Store {
	return &gormStore{db: s.db.WithContext(ctx)}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
