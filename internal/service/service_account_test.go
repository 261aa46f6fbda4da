package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockItemRepository implements store.ItemRepository for unit tests.
type mockItemRepository struct {
	itemsByOwnerFn func(ctx context.Context, email string) ([]models.Item, error)
	createItemFn   func(ctx context.Context, item models.Item) (models.Item, error)
	updateItemFn   func(ctx context.Context, req models.UpdateItemRequest) (models.Item, error)
	deleteItemFn   func(ctx context.Context, email string, itemNo int64) (models.Item, error)
}

func (m *mockItemRepository) ItemsByOwner(ctx context.Context, email string) ([]models.Item, error) {
	return m.itemsByOwnerFn(ctx, email)
}

func (m *mockItemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	return m.createItemFn(ctx, item)
}

func (m *mockItemRepository) UpdateItem(ctx context.Context, req models.UpdateItemRequest) (models.Item, error) {
	return m.updateItemFn(ctx, req)
}

func (m *mockItemRepository) DeleteItem(ctx context.Context, email string, itemNo int64) (models.Item, error) {
	return m.deleteItemFn(ctx, email, itemNo)
}

// fakeSequenceRepository keeps a per-email counter in memory, mirroring the
// atomic increment semantics of the real counter store.
type fakeSequenceRepository struct {
	mu       sync.Mutex
	counters map[string]int64
	err      error
}

func newFakeSequenceRepository() *fakeSequenceRepository {
	return &fakeSequenceRepository{counters: make(map[string]int64)}
}

func (f *fakeSequenceRepository) NextItemNumber(_ context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}

	f.counters[email]++
	return f.counters[email], nil
}

func newTestAccountService(items store.ItemRepository, sequences store.SequenceRepository) AccountService {
	return NewAccountService(items, sequences, logger.Nop())
}

func TestListItems_Success(t *testing.T) {
	items := &mockItemRepository{
		itemsByOwnerFn: func(_ context.Context, email string) ([]models.Item, error) {
			return []models.Item{
				{UserEmail: email, ItemNo: 1, Name: "pen", Cost: 10},
				{UserEmail: email, ItemNo: 2, Name: "book", Cost: 250},
			}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	got, err := svc.ListItems(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ItemNo)
	assert.Equal(t, int64(2), got[1].ItemNo)
}

func TestAddItem_AssignsNumberFromSequence(t *testing.T) {
	sequences := newFakeSequenceRepository()
	items := &mockItemRepository{
		createItemFn: func(_ context.Context, item models.Item) (models.Item, error) {
			item.ID = 42
			return item, nil
		},
	}
	svc := newTestAccountService(items, sequences)

	first, err := svc.AddItem(context.Background(), models.AddItemRequest{UserID: "a@x.com", Item: "pen", Cost: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ItemNo)

	second, err := svc.AddItem(context.Background(), models.AddItemRequest{UserID: "a@x.com", Item: "book", Cost: 250})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ItemNo)

	// numbering is independent per owner
	other, err := svc.AddItem(context.Background(), models.AddItemRequest{UserID: "b@x.com", Item: "pen", Cost: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.ItemNo)
}

func TestAddItem_Validation(t *testing.T) {
	items := &mockItemRepository{
		createItemFn: func(_ context.Context, item models.Item) (models.Item, error) {
			t.Fatal("repository must not be called for invalid input")
			return models.Item{}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	cases := []struct {
		name string
		req  models.AddItemRequest
	}{
		{"empty owner", models.AddItemRequest{Item: "pen", Cost: 10}},
		{"empty label", models.AddItemRequest{UserID: "a@x.com", Cost: 10}},
		{"negative cost", models.AddItemRequest{UserID: "a@x.com", Item: "pen", Cost: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAddItem_CounterUnavailableAbortsInsert(t *testing.T) {
	sequences := newFakeSequenceRepository()
	sequences.err = store.ErrCounterUnavailable

	items := &mockItemRepository{
		createItemFn: func(_ context.Context, item models.Item) (models.Item, error) {
			t.Fatal("no item row may be written when the counter is unreachable")
			return models.Item{}, nil
		},
	}
	svc := newTestAccountService(items, sequences)

	_, err := svc.AddItem(context.Background(), models.AddItemRequest{UserID: "a@x.com", Item: "pen", Cost: 10})
	assert.ErrorIs(t, err, store.ErrCounterUnavailable)
}

func TestAddItem_ConcurrentNumbersDistinctAndConsecutive(t *testing.T) {
	const workers = 32

	sequences := newFakeSequenceRepository()
	items := &mockItemRepository{
		createItemFn: func(_ context.Context, item models.Item) (models.Item, error) {
			return item, nil
		},
	}
	svc := newTestAccountService(items, sequences)

	numbers := make([]int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := svc.AddItem(context.Background(), models.AddItemRequest{UserID: "a@x.com", Item: "pen", Cost: 10})
			assert.NoError(t, err)
			numbers[i] = created.ItemNo
		}(i)
	}
	wg.Wait()

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, n := range numbers {
		assert.Equal(t, int64(i+1), n)
	}
}

func TestUpdateItem_Success(t *testing.T) {
	items := &mockItemRepository{
		updateItemFn: func(_ context.Context, req models.UpdateItemRequest) (models.Item, error) {
			return models.Item{UserEmail: req.Email, ItemNo: req.ID, Name: req.NewItemName, Cost: req.Cost}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	updated, err := svc.UpdateItem(context.Background(), models.UpdateItemRequest{
		Email:       "a@x.com",
		ID:          3,
		NewItemName: "notebook",
		Cost:        300,
	})
	require.NoError(t, err)
	assert.Equal(t, "notebook", updated.Name)
	assert.Equal(t, int64(3), updated.ItemNo)
}

func TestUpdateItem_Validation(t *testing.T) {
	items := &mockItemRepository{
		updateItemFn: func(_ context.Context, req models.UpdateItemRequest) (models.Item, error) {
			t.Fatal("repository must not be called for invalid input")
			return models.Item{}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	cases := []struct {
		name string
		req  models.UpdateItemRequest
	}{
		{"missing number", models.UpdateItemRequest{Email: "a@x.com", Cost: 10}},
		{"negative cost", models.UpdateItemRequest{Email: "a@x.com", ID: 1, Cost: -5}},
		{"empty owner", models.UpdateItemRequest{ID: 1, Cost: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateItem(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	items := &mockItemRepository{
		updateItemFn: func(_ context.Context, req models.UpdateItemRequest) (models.Item, error) {
			return models.Item{}, store.ErrItemNotFound
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	_, err := svc.UpdateItem(context.Background(), models.UpdateItemRequest{Email: "a@x.com", ID: 99, Cost: 10})
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestDeleteItem_Success(t *testing.T) {
	items := &mockItemRepository{
		deleteItemFn: func(_ context.Context, email string, itemNo int64) (models.Item, error) {
			return models.Item{UserEmail: email, ItemNo: itemNo, Name: "pen", Cost: 10}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	deleted, err := svc.DeleteItem(context.Background(), "a@x.com", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.ItemNo)
}

func TestDeleteItem_NotFound(t *testing.T) {
	items := &mockItemRepository{
		deleteItemFn: func(_ context.Context, email string, itemNo int64) (models.Item, error) {
			return models.Item{}, store.ErrItemNotFound
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	_, err := svc.DeleteItem(context.Background(), "a@x.com", 99)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestDeleteItem_InvalidNumber(t *testing.T) {
	items := &mockItemRepository{
		deleteItemFn: func(_ context.Context, email string, itemNo int64) (models.Item, error) {
			t.Fatal("repository must not be called for invalid input")
			return models.Item{}, nil
		},
	}
	svc := newTestAccountService(items, newFakeSequenceRepository())

	_, err := svc.DeleteItem(context.Background(), "a@x.com", 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
