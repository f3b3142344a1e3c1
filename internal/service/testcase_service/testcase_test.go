package testcase_service

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"github.com/tcp_snm/problemhub/internal/service"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	os.Exit(m.Run())
}

type fakeStore struct {
	problems  map[uuid.UUID]bool
	testcases []database.Testcase
	clock     time.Time
	// fail the insert after this many rows
	failAfter int
}

func (f *fakeStore) GetProblemByID(_ context.Context, problemID uuid.UUID) (database.Problem, error) {
	if !f.problems[problemID] {
		return database.Problem{}, pgx.ErrNoRows
	}
	return database.Problem{ProblemID: problemID}, nil
}

func (f *fakeStore) CreateTestcases(_ context.Context, args []database.CreateTestcaseParams) ([]database.Testcase, error) {
	var staged []database.Testcase
	for i, arg := range args {
		if f.failAfter > 0 && i == f.failAfter {
			return nil, errors.New("connection reset")
		}
		f.clock = f.clock.Add(time.Second)
		staged = append(staged, database.Testcase{
			TestcaseID: arg.TestcaseID,
			ProblemID:  arg.ProblemID,
			Input:      arg.Input,
			Output:     arg.Output,
			Visible:    arg.Visible,
			CreatedBy:  arg.CreatedBy,
			CreatedAt:  f.clock,
			UpdatedAt:  f.clock,
		})
	}
	f.testcases = append(f.testcases, staged...)
	return staged, nil
}

func (f *fakeStore) ListTestcases(_ context.Context, problemID uuid.UUID, visibleOnly bool) ([]database.Testcase, error) {
	var res []database.Testcase
	for _, tc := range f.testcases {
		if tc.ProblemID == problemID && (!visibleOnly || tc.Visible) {
			res = append(res, tc)
		}
	}
	slices.SortFunc(res, func(a, b database.Testcase) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return res, nil
}

func (f *fakeStore) GetTestcase(_ context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (database.Testcase, error) {
	for _, tc := range f.testcases {
		if tc.TestcaseID == testcaseID && tc.ProblemID == problemID {
			return tc, nil
		}
	}
	return database.Testcase{}, pgx.ErrNoRows
}

func (f *fakeStore) UpdateTestcase(_ context.Context, arg database.UpdateTestcaseParams) (database.Testcase, error) {
	for i, tc := range f.testcases {
		if tc.TestcaseID == arg.TestcaseID && tc.ProblemID == arg.ProblemID {
			tc.Input = arg.Input
			tc.Output = arg.Output
			tc.Visible = arg.Visible
			f.testcases[i] = tc
			return tc, nil
		}
	}
	return database.Testcase{}, pgx.ErrNoRows
}

func (f *fakeStore) DeleteTestcase(_ context.Context, testcaseID uuid.UUID, problemID uuid.UUID) (int64, error) {
	for i, tc := range f.testcases {
		if tc.TestcaseID == testcaseID && tc.ProblemID == problemID {
			f.testcases = slices.Delete(f.testcases, i, i+1)
			return 1, nil
		}
	}
	return 0, nil
}

func setup() (*TestcaseService, *fakeStore, context.Context, uuid.UUID) {
	problemID := uuid.New()
	store := &fakeStore{
		problems: map[uuid.UUID]bool{problemID: true},
		clock:    time.Now(),
	}
	ctx := service.WithClaims(context.Background(), service.AdminCredentialClaims{
		AdminID: uuid.New(),
		Email:   "ada@x.com",
	})
	return &TestcaseService{DB: store}, store, ctx, problemID
}

func addSample(t *testing.T, ts *TestcaseService, ctx context.Context, problemID uuid.UUID) AddTestcasesResponse {
	t.Helper()
	res, err := ts.AddTestcases(ctx, problemID, AddTestcasesRequest{
		Visible: []TestcaseInput{{Input: "1 2", Output: "3"}},
		Hidden: []TestcaseInput{
			{Input: "5 5", Output: "10"},
			{Input: "0 0", Output: "0"},
		},
	})
	if err != nil {
		t.Fatalf("AddTestcases() error = %v", err)
	}
	return res
}

func TestAddTestcases(t *testing.T) {
	ts, _, ctx, problemID := setup()

	res := addSample(t, ts, ctx, problemID)
	if res.Count != 3 || len(res.Testcases) != 3 {
		t.Fatalf("count = %d, want 3", res.Count)
	}
	if !res.Testcases[0].Visible || res.Testcases[1].Visible || res.Testcases[2].Visible {
		t.Error("visibility does not follow the request arrays")
	}
	for _, tc := range res.Testcases {
		if tc.CreatedBy == nil {
			t.Error("created_by should be set from the session")
		}
	}
}

func TestAddTestcasesErrors(t *testing.T) {
	ts, store, ctx, problemID := setup()

	_, err := ts.AddTestcases(ctx, uuid.New(), AddTestcasesRequest{
		Visible: []TestcaseInput{{Input: "1", Output: "1"}},
	})
	if !errors.Is(err, hub_errors.ErrNotFound) {
		t.Errorf("unknown problem error = %v, want ErrNotFound", err)
	}

	_, err = ts.AddTestcases(ctx, problemID, AddTestcasesRequest{
		Hidden: []TestcaseInput{{Input: "1"}},
	})
	if !errors.Is(err, hub_errors.ErrInvalidInput) {
		t.Errorf("missing output error = %v, want ErrInvalidInput", err)
	}

	store.failAfter = 1
	_, err = ts.AddTestcases(ctx, problemID, AddTestcasesRequest{
		Visible: []TestcaseInput{{Input: "1", Output: "1"}, {Input: "2", Output: "2"}},
	})
	if !errors.Is(err, hub_errors.ErrInternal) {
		t.Errorf("failed insert error = %v, want ErrInternal", err)
	}
	if len(store.testcases) != 0 {
		t.Errorf("a failed batch must not leave rows, found %d", len(store.testcases))
	}
}

func TestGetTestcases(t *testing.T) {
	ts, _, ctx, problemID := setup()
	addSample(t, ts, ctx, problemID)

	all, err := ts.GetAll(ctx, problemID)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("GetAll() returned %d, want 3", len(all))
	}
	if !all[0].CreatedAt.After(all[len(all)-1].CreatedAt) {
		t.Error("want newest first")
	}

	public, err := ts.GetPublic(context.Background(), problemID)
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 1 || !public[0].Visible {
		t.Errorf("GetPublic() = %+v, want the single visible testcase", public)
	}

	for _, fn := range []func(context.Context, uuid.UUID) ([]Testcase, error){ts.GetAll, ts.GetPublic} {
		if _, err := fn(ctx, uuid.New()); !errors.Is(err, hub_errors.ErrNotFound) {
			t.Errorf("unknown problem error = %v, want ErrNotFound", err)
		}
	}
}

func TestGetSingleUpdateDelete(t *testing.T) {
	ts, _, ctx, problemID := setup()
	res := addSample(t, ts, ctx, problemID)
	id := res.Testcases[1].TestcaseID

	tc, err := ts.GetSingle(ctx, problemID, id)
	if err != nil {
		t.Fatal(err)
	}
	if tc.Input != "5 5" {
		t.Errorf("input = %q, want 5 5", tc.Input)
	}

	visible := true
	output := "ten"
	updated, err := ts.Update(ctx, problemID, id, UpdateTestcaseRequest{Output: &output, Visible: &visible})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Input != "5 5" || updated.Output != "ten" || !updated.Visible {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err = ts.Delete(ctx, problemID, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	tests := []struct {
		name string
		run  func() error
	}{
		{"get deleted", func() error { _, err := ts.GetSingle(ctx, problemID, id); return err }},
		{"delete deleted", func() error { return ts.Delete(ctx, problemID, id) }},
		{"update deleted", func() error {
			_, err := ts.Update(ctx, problemID, id, UpdateTestcaseRequest{Output: &output})
			return err
		}},
		{"wrong problem", func() error {
			_, err := ts.GetSingle(ctx, uuid.New(), res.Testcases[0].TestcaseID)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, hub_errors.ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}
