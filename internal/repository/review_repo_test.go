package repository

import (
	"testing"

	"go-retail-store/internal/model"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/database"

	"github.com/google/uuid"
)

func newTestReviewRepo(t *testing.T) ReviewRepository {
	t.Helper()
	db, err := database.OpenReviewDB(t.TempDir())
	if err != nil {
		t.Fatalf("open review db: %v", err)
	}
	repo := NewReviewRepo(db)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreate(t *testing.T, repo ReviewRepository, rv *model.Review) {
	t.Helper()
	if err := repo.Create(rv); err != nil {
		t.Fatalf("create review: %v", err)
	}
}

func TestReviewCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestReviewRepo(t)

	rv := &model.Review{StoreID: uuid.New(), ProductID: uuid.New(), Rating: 4}
	mustCreate(t, repo, rv)

	if rv.ID == "" {
		t.Fatal("expected review ID to be assigned")
	}
	if rv.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestReviewTripleUniqueness(t *testing.T) {
	repo := newTestReviewRepo(t)

	customerID := uuid.New()
	storeID, productID := uuid.New(), uuid.New()

	mustCreate(t, repo, &model.Review{
		StoreID: storeID, ProductID: productID, CustomerID: &customerID, Rating: 4,
	})

	err := repo.Create(&model.Review{
		StoreID: storeID, ProductID: productID, CustomerID: &customerID, Rating: 2,
	})
	if err == nil {
		t.Fatal("expected conflict on duplicate triple")
	}
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected CONFLICT, got %v", apperr.KindOf(err))
	}

	// Different product breaks the triple.
	mustCreate(t, repo, &model.Review{
		StoreID: storeID, ProductID: uuid.New(), CustomerID: &customerID, Rating: 5,
	})

	exists, err := repo.ExistsByTriple(customerID, productID, storeID)
	if err != nil {
		t.Fatalf("exists by triple: %v", err)
	}
	if !exists {
		t.Fatal("expected triple to exist")
	}
}

func TestReviewAnonymousSkipsUniqueness(t *testing.T) {
	repo := newTestReviewRepo(t)

	storeID, productID := uuid.New(), uuid.New()
	mustCreate(t, repo, &model.Review{StoreID: storeID, ProductID: productID, Rating: 1})
	mustCreate(t, repo, &model.Review{StoreID: storeID, ProductID: productID, Rating: 5})

	reviews, err := repo.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		t.Fatalf("find by store and product: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 anonymous reviews, got %d", len(reviews))
	}
}

func TestReviewFindByStoreAndProductIsolatesPrefix(t *testing.T) {
	repo := newTestReviewRepo(t)

	storeID, productID := uuid.New(), uuid.New()
	mustCreate(t, repo, &model.Review{StoreID: storeID, ProductID: productID, Rating: 3})
	mustCreate(t, repo, &model.Review{StoreID: storeID, ProductID: uuid.New(), Rating: 5})
	mustCreate(t, repo, &model.Review{StoreID: uuid.New(), ProductID: productID, Rating: 5})

	reviews, err := repo.FindByStoreAndProduct(storeID, productID)
	if err != nil {
		t.Fatalf("find by store and product: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review for the (store, product) pair, got %d", len(reviews))
	}
	if reviews[0].Rating != 3 {
		t.Fatalf("wrong review returned: rating %d", reviews[0].Rating)
	}
}

func TestReviewFindByRatingBetween(t *testing.T) {
	repo := newTestReviewRepo(t)

	storeID, productID := uuid.New(), uuid.New()
	for _, rating := range []int{1, 2, 3, 4, 5} {
		mustCreate(t, repo, &model.Review{StoreID: storeID, ProductID: productID, Rating: rating})
	}

	reviews, err := repo.FindByRatingBetween(storeID, productID, 3, 5)
	if err != nil {
		t.Fatalf("find by rating: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("expected 3 reviews in [3,5], got %d", len(reviews))
	}
	for _, rv := range reviews {
		if rv.Rating < 3 || rv.Rating > 5 {
			t.Fatalf("review rating %d outside range", rv.Rating)
		}
	}
}

func TestReviewFindByCustomer(t *testing.T) {
	repo := newTestReviewRepo(t)

	customerID := uuid.New()
	other := uuid.New()

	mustCreate(t, repo, &model.Review{StoreID: uuid.New(), ProductID: uuid.New(), CustomerID: &customerID, Rating: 4})
	mustCreate(t, repo, &model.Review{StoreID: uuid.New(), ProductID: uuid.New(), CustomerID: &customerID, Rating: 2})
	mustCreate(t, repo, &model.Review{StoreID: uuid.New(), ProductID: uuid.New(), CustomerID: &other, Rating: 5})
	mustCreate(t, repo, &model.Review{StoreID: uuid.New(), ProductID: uuid.New(), Rating: 1}) // anonymous

	reviews, err := repo.FindByCustomer(customerID)
	if err != nil {
		t.Fatalf("find by customer: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews for customer, got %d", len(reviews))
	}
	for _, rv := range reviews {
		if rv.CustomerID == nil || *rv.CustomerID != customerID {
			t.Fatalf("review %s belongs to wrong customer", rv.ID)
		}
	}
}
