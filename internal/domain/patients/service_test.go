package patients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo is a minimal in-memory Repository for service tests. No locking;
// tests are single-goroutine.
type testRepo struct {
	byID    map[string]Patient
	idByMRN map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Patient{}, idByMRN: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, p Patient) error {
	if _, taken := r.idByMRN[p.MRN]; taken {
		return ErrMRNExists
	}
	r.byID[p.ID] = p
	r.idByMRN[p.MRN] = p.ID
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetByMRN(ctx context.Context, mrn string) (Patient, error) {
	id, ok := r.idByMRN[mrn]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) Search(ctx context.Context, query, status string) ([]Patient, error) {
	out := make([]Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok {
		return nil
	}
	delete(r.byID, id)
	delete(r.idByMRN, p.MRN)
	return nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newTestRepo())

	p, err := svc.Create(ctx, CreateInput{
		MRN:       "  M-100 ",
		FirstName: " John ",
		LastName:  " Smith ",
		Phone:     " 555-0101 ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "M-100", p.MRN)
	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, "555-0101", p.Phone)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestService_Create_RequiredFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newTestRepo())

	cases := []CreateInput{
		{FirstName: "John", LastName: "Smith"},        // no MRN
		{MRN: "M-1", LastName: "Smith"},               // no first name
		{MRN: "M-1", FirstName: "John"},               // no last name
		{MRN: "  ", FirstName: "John", LastName: "S"}, // blank MRN
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestService_Create_DuplicateMRN(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newTestRepo())

	_, err := svc.Create(ctx, CreateInput{MRN: "M-100", FirstName: "John", LastName: "Smith"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{MRN: "M-100", FirstName: "Jane", LastName: "Doe"})
	assert.ErrorIs(t, err, ErrMRNExists)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := newTestService(repo)

	p, err := svc.Create(ctx, CreateInput{MRN: "M-100", FirstName: "John", LastName: "Smith"})
	require.NoError(t, err)

	// Lowercase input normalizes to the stored uppercase value.
	got, err := svc.UpdateStatus(ctx, p.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, got.Status)

	stored, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, StatusInactive, stored.Status)

	// Self-transition is allowed: an allow-list, not a transition matrix.
	_, err = svc.UpdateStatus(ctx, p.ID, "INACTIVE")
	assert.NoError(t, err)

	// A rejected target leaves the record untouched.
	_, err = svc.UpdateStatus(ctx, p.ID, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	stored, _ = repo.GetByID(ctx, p.ID)
	assert.Equal(t, StatusInactive, stored.Status)
}

func TestService_UpdateStatus_UnknownPatient(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newTestRepo())

	_, err := svc.UpdateStatus(ctx, "missing", "ACTIVE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"ACTIVE", StatusActive, false},
		{"active", StatusActive, false},
		{" Inactive ", StatusInactive, false},
		{"bogus", "", true},
		{"", "", true},
		{"ARCHIVED", "", true},
	}
	for _, c := range cases {
		got, err := ParseStatus(c.in)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got)
	}
}
