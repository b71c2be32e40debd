package goals

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/user/spendshift-go/auth"
	"github.com/user/spendshift-go/dates"
)

func asUser(user *auth.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.NewContextWithUser(r.Context(), user)))
		})
	}
}

func newTestRouter(store Store, user *auth.User) http.Handler {
	handler := NewHandler(NewService(store))
	r := chi.NewRouter()
	r.Route("/api/goals", func(r chi.Router) {
		r.Use(asUser(user))
		handler.RegisterRoutes(r)
	})
	return r
}

var (
	alice = &auth.User{ID: 1, Email: "alice@example.com"}
	bob   = &auth.User{ID: 2, Email: "bob@example.com"}
)

func seed(t *testing.T, store Store, ownerID int64, name string, deadline dates.Date) *Goal {
	t.Helper()
	goal, err := store.Create(context.Background(), ownerID, CreateRequest{
		Name:         name,
		TargetAmount: 1000,
		Deadline:     deadline,
	})
	require.NoError(t, err)
	return goal
}

func TestList_OrderedByDeadlineAscThenIDAsc(t *testing.T) {
	store := newMemStore()
	seed(t, store, alice.ID, "latest", dates.New(2025, time.June, 1))  // id 1
	seed(t, store, alice.ID, "soonest", dates.New(2025, time.March, 1)) // id 2
	seed(t, store, alice.ID, "tie-a", dates.New(2025, time.April, 1))  // id 3
	seed(t, store, alice.ID, "tie-b", dates.New(2025, time.April, 1))  // id 4

	apitest.New().
		Handler(newTestRouter(store, alice)).
		Get("/api/goals/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$[0].name`, "soonest")).
		Assert(jsonpath.Equal(`$[1].name`, "tie-a")).
		Assert(jsonpath.Equal(`$[2].name`, "tie-b")).
		Assert(jsonpath.Equal(`$[3].name`, "latest")).
		End()
}

func TestCreate_DefaultsCurrentAmountToZero(t *testing.T) {
	store := newMemStore()

	apitest.New().
		Handler(newTestRouter(store, alice)).
		Post("/api/goals/").
		JSON(`{"name":"emergency fund","target_amount":5000,"deadline":"2025-12-31"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.current_amount`, float64(0))).
		Assert(jsonpath.Equal(`$.user_id`, float64(alice.ID))).
		End()
}

func TestCreate_ValidationFieldDetail(t *testing.T) {
	store := newMemStore()

	apitest.New().
		Handler(newTestRouter(store, alice)).
		Post("/api/goals/").
		JSON(`{"name":"","target_amount":0,"current_amount":-1,"deadline":"2025-12-31"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Present(`$.details.name`)).
		Assert(jsonpath.Present(`$.details.target_amount`)).
		Assert(jsonpath.Present(`$.details.current_amount`)).
		End()
}

func TestUpdate_PartialProgressOnly(t *testing.T) {
	store := newMemStore()
	seed(t, store, alice.ID, "vacation", dates.New(2025, time.August, 1))

	apitest.New().
		Handler(newTestRouter(store, alice)).
		Put("/api/goals/1").
		JSON(`{"current_amount":250}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.current_amount`, float64(250))).
		Assert(jsonpath.Equal(`$.name`, "vacation")).
		Assert(jsonpath.Equal(`$.target_amount`, float64(1000))).
		End()
}

func TestCrossOwnerAccessBehavesAsNotFound(t *testing.T) {
	store := newMemStore()
	seed(t, store, bob.ID, "bob's goal", dates.New(2025, time.August, 1))

	router := newTestRouter(store, alice)

	apitest.New().Handler(router).
		Put("/api/goals/1").
		JSON(`{"current_amount":1}`).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal(`$.error`, "goal not found")).
		End()

	apitest.New().Handler(router).
		Delete("/api/goals/1").
		Expect(t).
		Status(http.StatusNotFound).
		End()

	// Bob still sees his goal.
	_, err := store.Get(context.Background(), 1, bob.ID)
	require.NoError(t, err)
}
