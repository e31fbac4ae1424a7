package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"go-retail-store/internal/model"
	"go-retail-store/pkg/apperr"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
)

// ReviewRepository is the document store for reviews. Reviews live in Pebble
// as JSON documents under composite keys:
//
//	rv#<storeID>#<productID>#<reviewID>  -> review document
//	uq#<customerID>#<productID>#<storeID> -> review key (uniqueness of the triple)
//	cu#<customerID>#<reviewID>            -> review key (customer lookups)
//
// Prefix scans over rv# answer the per-(store, product) queries; the uq# key
// makes the one-review-per-triple check a single point read.
type ReviewRepository interface {
	Create(review *model.Review) error
	FindByStoreAndProduct(storeID, productID uuid.UUID) ([]model.Review, error)
	FindByRatingBetween(storeID, productID uuid.UUID, minRating, maxRating int) ([]model.Review, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Review, error)
	ExistsByTriple(customerID, productID, storeID uuid.UUID) (bool, error)
	Close() error
}

type reviewRepo struct {
	db *pebble.DB
}

func NewReviewRepo(db *pebble.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func reviewKey(storeID, productID uuid.UUID, reviewID string) []byte {
	return []byte(fmt.Sprintf("rv#%s#%s#%s", storeID, productID, reviewID))
}

func tripleKey(customerID, productID, storeID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("uq#%s#%s#%s", customerID, productID, storeID))
}

func customerKey(customerID uuid.UUID, reviewID string) []byte {
	return []byte(fmt.Sprintf("cu#%s#%s", customerID, reviewID))
}

// prefixIterOptions bounds an iterator to keys starting with prefix.
func prefixIterOptions(prefix []byte) *pebble.IterOptions {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			upper = upper[:i+1]
			return &pebble.IterOptions{LowerBound: prefix, UpperBound: upper}
		}
	}
	return &pebble.IterOptions{LowerBound: prefix}
}

func decodeReview(val []byte) (model.Review, error) {
	var rv model.Review
	if err := json.Unmarshal(val, &rv); err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

// Create assigns the document ID and writes the document plus its index keys
// in one synced batch. A non-anonymous duplicate of an existing
// (customer, product, store) triple is rejected with a conflict.
func (r *reviewRepo) Create(review *model.Review) error {
	if review.CustomerID != nil {
		exists, err := r.ExistsByTriple(*review.CustomerID, review.ProductID, review.StoreID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.New(apperr.KindConflict, "customer has already reviewed this product at this store")
		}
	}

	review.ID = uuid.New().String()
	review.CreatedAt = time.Now()

	doc, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	key := reviewKey(review.StoreID, review.ProductID, review.ID)
	batch := r.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key, doc, nil); err != nil {
		return err
	}
	if review.CustomerID != nil {
		if err := batch.Set(tripleKey(*review.CustomerID, review.ProductID, review.StoreID), key, nil); err != nil {
			return err
		}
		if err := batch.Set(customerKey(*review.CustomerID, review.ID), key, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (r *reviewRepo) FindByStoreAndProduct(storeID, productID uuid.UUID) ([]model.Review, error) {
	prefix := []byte(fmt.Sprintf("rv#%s#%s#", storeID, productID))
	it, err := r.db.NewIter(prefixIterOptions(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var reviews []model.Review
	for it.First(); it.Valid(); it.Next() {
		rv, err := decodeReview(it.Value())
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, it.Error()
}

func (r *reviewRepo) FindByRatingBetween(storeID, productID uuid.UUID, minRating, maxRating int) ([]model.Review, error) {
	all, err := r.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		return nil, err
	}
	var filtered []model.Review
	for _, rv := range all {
		if rv.Rating >= minRating && rv.Rating <= maxRating {
			filtered = append(filtered, rv)
		}
	}
	return filtered, nil
}

// FindByCustomer resolves the cu# index keys to their review documents.
func (r *reviewRepo) FindByCustomer(customerID uuid.UUID) ([]model.Review, error) {
	prefix := []byte(fmt.Sprintf("cu#%s#", customerID))
	it, err := r.db.NewIter(prefixIterOptions(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var reviews []model.Review
	for it.First(); it.Valid(); it.Next() {
		docKey := append([]byte(nil), it.Value()...)
		val, closer, err := r.db.Get(docKey)
		if err == pebble.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		rv, decErr := decodeReview(val)
		closer.Close()
		if decErr != nil {
			return nil, decErr
		}
		reviews = append(reviews, rv)
	}
	return reviews, it.Error()
}

func (r *reviewRepo) ExistsByTriple(customerID, productID, storeID uuid.UUID) (bool, error) {
	_, closer, err := r.db.Get(tripleKey(customerID, productID, storeID))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

func (r *reviewRepo) Close() error {
	return r.db.Close()
}
