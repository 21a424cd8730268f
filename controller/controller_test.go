/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitycrud"
	"github.com/suparena/entitycrud/condition"
	"github.com/suparena/entitycrud/controller"
	"github.com/suparena/entitycrud/datastore/mock"
	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

type Person struct {
	ID   int64
	Name string
	Age  int
}

func (p Person) PrimaryKey() int64 { return p.ID }

type Token struct {
	ID    uuid.UUID
	Owner string
}

func (t Token) PrimaryKey() uuid.UUID { return t.ID }

type Opaque struct{ Key any }

func (o Opaque) PrimaryKey() any { return o.Key }

var _ controller.EntityService[Person, int64] = (*entitycrud.Service[Person, int64])(nil)

var peopleSchema = storagemodels.Schema{
	Table:   "people",
	Key:     "id",
	Columns: map[string]string{"id": "id", "name": "name", "age": "age"},
}

// recordingService wraps a service and records the calls reaching it.
type recordingService[T storagemodels.Entity[K], K comparable] struct {
	controller.EntityService[T, K]
	finds   []K
	removed [][]K
}

func (r *recordingService[T, K]) Find(ctx context.Context, key K) (*T, error) {
	r.finds = append(r.finds, key)
	return r.EntityService.Find(ctx, key)
}

func (r *recordingService[T, K]) Remove(ctx context.Context, keys []K) bool {
	r.removed = append(r.removed, keys)
	return r.EntityService.Remove(ctx, keys)
}

func newPeople(t *testing.T, people ...Person) (*recordingService[Person, int64], *mock.DataStore[Person, int64]) {
	t.Helper()
	store := mock.New[Person, int64]()
	for _, p := range people {
		_, err := store.Save(context.Background(), p)
		require.NoError(t, err)
	}
	svc := entitycrud.NewService[Person, int64](store, entitycrud.WithSchema(peopleSchema))
	return &recordingService[Person, int64]{EntityService: svc}, store
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPeople(t, Person{ID: 1, Name: "ann"})
	c := controller.New[Person, int64](svc)

	res := c.Find(ctx, "1")
	require.True(t, res.OK())
	require.Equal(t, "ann", res.Value.Name)

	res = c.Find(ctx, "  ")
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, errors.KindNotFound, res.Kind)

	res = c.Find(ctx, "one")
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, errors.KindValidation, res.Kind)

	res = c.Find(ctx, "2")
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, "entity not found", res.Message)

	require.Equal(t, []int64{1, 2}, svc.finds, "empty and malformed keys must not reach the service")
}

func TestFindUnresolvedKeyType(t *testing.T) {
	store := mock.New[Opaque, any]()
	c := controller.New[Opaque, any](entitycrud.NewService[Opaque, any](store))

	res := c.Find(context.Background(), "1")
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, errors.KindNotResolved, res.Kind)

	del := c.Delete(context.Background(), "1,2")
	require.Equal(t, "FAIL", del.Text())
}

func TestUUIDKeys(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := mock.New[Token, uuid.UUID]()
	_, err := store.Save(ctx, Token{ID: id, Owner: "ann"})
	require.NoError(t, err)
	c := controller.New[Token, uuid.UUID](entitycrud.NewService[Token, uuid.UUID](store))

	res := c.Find(ctx, id.String())
	require.True(t, res.OK())
	require.Equal(t, "ann", res.Value.Owner)

	res = c.Find(ctx, "not-a-uuid")
	require.Equal(t, errors.KindValidation, res.Kind)
}

func TestCustomKeyParser(t *testing.T) {
	svc, _ := newPeople(t, Person{ID: 42})
	c := controller.New[Person, int64](svc, controller.WithKeyParser(func(text string) (int64, error) {
		return 42, nil
	}))

	require.True(t, c.Find(context.Background(), "anything").OK())
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, store := newPeople(t)
	c := controller.New[Person, int64](svc)

	res := c.Create(ctx, Person{ID: 1, Name: "ann"})
	require.Equal(t, "OK", res.Text())
	require.Equal(t, 1, store.Count())

	res = c.Create(ctx, Person{ID: 1, Name: "ann"})
	require.Equal(t, "FAIL", res.Text())
	require.Equal(t, errors.KindAlreadyExists, res.Kind)
}

func TestCreateNil(t *testing.T) {
	store := mock.New[*Person, int64]()
	c := controller.New[*Person, int64](entitycrud.NewService[*Person, int64](store))

	res := c.Create(context.Background(), nil)
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, "entity is nil", res.Message)
	require.Zero(t, store.Count())
}

func TestUpdatePersistsSubmittedEntity(t *testing.T) {
	ctx := context.Background()
	svc, store := newPeople(t, Person{ID: 1, Name: "ann", Age: 40})
	c := controller.New[Person, int64](svc)

	res := c.Update(ctx, Person{ID: 1, Name: "anne", Age: 41})
	require.Equal(t, "OK", res.Text())
	require.Equal(t, Person{ID: 1, Name: "anne", Age: 41}, store.GetData()[1])

	res = c.Update(ctx, Person{ID: 9})
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, "entity not found", res.Message)
	require.Equal(t, 1, store.Count())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("RepeatedSeparators", func(t *testing.T) {
		svc, store := newPeople(t, Person{ID: 5}, Person{ID: 6}, Person{ID: 7}, Person{ID: 8})
		c := controller.New[Person, int64](svc)

		res := c.Delete(ctx, "5, 6,,7")
		require.Equal(t, "OK", res.Text())
		require.Equal(t, [][]int64{{5, 6, 7}}, svc.removed)
		require.Equal(t, 1, store.Count())
	})

	t.Run("MalformedKey", func(t *testing.T) {
		svc, store := newPeople(t, Person{ID: 5})
		c := controller.New[Person, int64](svc)

		res := c.Delete(ctx, "5,x")
		require.Equal(t, errors.KindValidation, res.Kind)
		require.Empty(t, svc.removed)
		require.Equal(t, 1, store.Count())
	})

	t.Run("Empty", func(t *testing.T) {
		svc, _ := newPeople(t)
		c := controller.New[Person, int64](svc)

		require.Equal(t, "FAIL", c.Delete(ctx, " , ").Text())
		require.Empty(t, svc.removed)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		svc, store := newPeople(t, Person{ID: 1}, Person{ID: 2})
		store.WithDeleteErrorFor(2, stderrors.New("row locked"))
		c := controller.New[Person, int64](svc)

		require.Equal(t, "FAIL", c.Delete(ctx, "1,2").Text())
		require.Equal(t, 1, store.Count())
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	svc, store := newPeople(t, Person{ID: 1, Age: 30})
	c := controller.New[Person, int64](svc)

	res := c.Query(ctx, condition.New().Equals("age", 30))
	require.True(t, res.OK())
	require.Len(t, res.Value, 1)
	require.Equal(t, "SELECT T.* FROM people T WHERE age = ? ", store.Statements()[0].Text)

	res = c.Query(ctx, condition.New().Equals("salary", 1))
	require.Equal(t, controller.OutcomeFail, res.Outcome)
	require.Equal(t, errors.KindSchema, res.Kind)
}

func TestErrorsBecomeResults(t *testing.T) {
	store := mock.New[Person, int64]().WithQueryFunc(func(ctx context.Context, stmt storagemodels.Statement) ([]Person, error) {
		return nil, stderrors.New("connection refused")
	})
	c := controller.New[Person, int64](entitycrud.NewService[Person, int64](store, entitycrud.WithSchema(peopleSchema)))

	res := c.Query(context.Background(), nil)
	require.Equal(t, controller.OutcomeError, res.Outcome)
	require.Equal(t, errors.KindPersistence, res.Kind)
	require.Contains(t, res.Text(), "connection refused")
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	m, err := controller.NewMetrics(reg)
	require.NoError(t, err)
	again, err := controller.NewMetrics(reg)
	require.NoError(t, err, "a second registration reuses the counter")

	svc, _ := newPeople(t, Person{ID: 1})
	c := controller.New[Person, int64](svc, controller.WithMetrics(m), controller.WithName("people"))
	other := controller.New[Person, int64](svc, controller.WithMetrics(again), controller.WithName("people"))

	c.Find(ctx, "1")
	other.Find(ctx, "1")
	c.Find(ctx, "2")

	series, err := testutil.GatherAndCount(reg, "entitycrud_operations_total")
	require.NoError(t, err)
	require.Equal(t, 2, series)
	found, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, found, 1)

	var okCount, failCount float64
	for _, metric := range found[0].GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() != "outcome" {
				continue
			}
			switch label.GetValue() {
			case "OK":
				okCount = metric.GetCounter().GetValue()
			case "FAIL":
				failCount = metric.GetCounter().GetValue()
			}
		}
	}
	require.Equal(t, 2.0, okCount)
	require.Equal(t, 1.0, failCount)
}

func TestSplitKeys(t *testing.T) {
	require.Equal(t, []string{"5", "6", "7"}, controller.SplitKeys("5, 6,,7"))
	require.Equal(t, []string{"a"}, controller.SplitKeys(" a ,"))
	require.Nil(t, controller.SplitKeys("   "))
}
