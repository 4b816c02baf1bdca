package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
)

// In-memory fakes. Each mirrors the matching repository's contract,
// including (nil, nil) for absent records.

type fakeReturns struct{ byID map[string]postgres.TaxReturn }

func newFakeReturns() *fakeReturns {
	return &fakeReturns{byID: map[string]postgres.TaxReturn{}}
}

func (f *fakeReturns) Save(_ context.Context, ret *postgres.TaxReturn) error {
	f.byID[ret.ID] = *ret
	return nil
}

func (f *fakeReturns) Get(_ context.Context, id string) (*postgres.TaxReturn, error) {
	if ret, ok := f.byID[id]; ok {
		out := ret
		return &out, nil
	}
	return nil, nil
}

func (f *fakeReturns) ListByUser(_ context.Context, userID string) ([]postgres.TaxReturn, error) {
	var out []postgres.TaxReturn
	for _, ret := range f.byID {
		if ret.UserID == userID {
			out = append(out, ret)
		}
	}
	return out, nil
}

func (f *fakeReturns) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeW2s struct{ records []postgres.W2Record }

func (f *fakeW2s) Save(_ context.Context, w2 *postgres.W2Record) error {
	f.records = append(f.records, *w2)
	return nil
}

func (f *fakeW2s) ListByReturn(_ context.Context, returnID string) ([]postgres.W2Record, error) {
	var out []postgres.W2Record
	for _, rec := range f.records {
		if rec.ReturnID == returnID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeW2s) Delete(context.Context, string) error { return nil }

type fake1099s struct{ records []postgres.Form1099Record }

func (f *fake1099s) Save(_ context.Context, form *postgres.Form1099Record) error {
	f.records = append(f.records, *form)
	return nil
}

func (f *fake1099s) ListByReturn(_ context.Context, returnID string) ([]postgres.Form1099Record, error) {
	var out []postgres.Form1099Record
	for _, rec := range f.records {
		if rec.ReturnID == returnID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fake1099s) Delete(context.Context, string) error { return nil }

type fakeTransactions struct{ records []postgres.TransactionRecord }

func (f *fakeTransactions) Add(_ context.Context, tx *postgres.TransactionRecord) error {
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeTransactions) ListByReturn(_ context.Context, returnID string) ([]postgres.TransactionRecord, error) {
	var out []postgres.TransactionRecord
	for _, rec := range f.records {
		if rec.ReturnID == returnID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeTransactions) Delete(context.Context, string) error { return nil }

type fakeDependents struct{ records []postgres.DependentRecord }

func (f *fakeDependents) Add(_ context.Context, dep *postgres.DependentRecord) error {
	f.records = append(f.records, *dep)
	return nil
}

func (f *fakeDependents) ListByReturn(_ context.Context, returnID string) ([]postgres.DependentRecord, error) {
	var out []postgres.DependentRecord
	for _, rec := range f.records {
		if rec.ReturnID == returnID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDependents) Delete(context.Context, string) error { return nil }

type fakeItemized struct{ byReturn map[string]postgres.ItemizedRecord }

func newFakeItemized() *fakeItemized {
	return &fakeItemized{byReturn: map[string]postgres.ItemizedRecord{}}
}

func (f *fakeItemized) Save(_ context.Context, rec *postgres.ItemizedRecord) error {
	f.byReturn[rec.ReturnID] = *rec
	return nil
}

func (f *fakeItemized) Get(_ context.Context, returnID string) (*postgres.ItemizedRecord, error) {
	if rec, ok := f.byReturn[returnID]; ok {
		out := rec
		return &out, nil
	}
	return nil, nil
}

func (f *fakeItemized) Delete(_ context.Context, returnID string) error {
	delete(f.byReturn, returnID)
	return nil
}

type fakeUsers struct{ byEmail map[string]postgres.User }

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]postgres.User{}} }

func (f *fakeUsers) Create(_ context.Context, user *postgres.User) error {
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*postgres.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			out := user
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*postgres.User, error) {
	if user, ok := f.byEmail[email]; ok {
		out := user
		return &out, nil
	}
	return nil, nil
}

func newTestService() (*ReturnService, *fakeW2s, *fake1099s, *fakeTransactions, *fakeDependents, *fakeItemized) {
	w2s := &fakeW2s{}
	forms := &fake1099s{}
	txs := &fakeTransactions{}
	deps := &fakeDependents{}
	itemized := newFakeItemized()
	svc := NewReturnService(newFakeReturns(), w2s, forms, txs, deps, itemized, nil, nil)
	return svc, w2s, forms, txs, deps, itemized
}

func TestCreateAndGetOwned(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusSingle, "NY")
	require.NoError(t, err)
	require.NotEmpty(t, ret.ID)

	got, err := svc.GetOwned(ctx, "user-1", ret.ID)
	require.NoError(t, err)
	assert.Equal(t, ret.ID, got.ID)

	_, err = svc.GetOwned(ctx, "user-2", ret.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOwned(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "user-1", 2025, "MARRIED", "")
	assert.Error(t, err)
}

func TestAssembleInputSumsDocuments(t *testing.T) {
	svc, w2s, forms, txs, deps, itemized := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusMarriedJoint, "NJ")
	require.NoError(t, err)

	ret.AdditionalIncome = 1000
	ret.Adjustments = 200
	ret.TaxPayments = 500
	require.NoError(t, svc.Returns.Save(ctx, ret))

	require.NoError(t, w2s.Save(ctx, &postgres.W2Record{ID: "w1", ReturnID: ret.ID, Employer: "Acme", Wages: 50000, FederalTaxWithheld: 6000}))
	require.NoError(t, forms.Save(ctx, &postgres.Form1099Record{ID: "f1", ReturnID: ret.ID, Kind: postgres.Form1099KindInterest, Amount: 100.10}))
	require.NoError(t, forms.Save(ctx, &postgres.Form1099Record{ID: "f2", ReturnID: ret.ID, Kind: postgres.Form1099KindInterest, Amount: 0.0549}))
	require.NoError(t, forms.Save(ctx, &postgres.Form1099Record{ID: "f3", ReturnID: ret.ID, Kind: postgres.Form1099KindDividends, Amount: 300}))
	require.NoError(t, txs.Add(ctx, &postgres.TransactionRecord{ID: "t1", ReturnID: ret.ID, Proceeds: 2500, CostBasis: 2000, IsLongTerm: true}))
	require.NoError(t, deps.Add(ctx, &postgres.DependentRecord{ID: "d1", ReturnID: ret.ID, FirstName: "Jamie", LastName: "Doe", DateOfBirth: time.Date(2015, 4, 12, 0, 0, 0, 0, time.UTC), Relationship: "Child"}))
	require.NoError(t, itemized.Save(ctx, &postgres.ItemizedRecord{ReturnID: ret.ID, MortgageInterest: 9000}))

	input, err := svc.AssembleInput(ctx, ret)
	require.NoError(t, err)

	require.Len(t, input.W2s, 1)
	// Interest documents are summed with cent rounding: 100.10 + 0.0549
	// rounds to 100.15.
	assert.Equal(t, 100.15, input.TaxableInterest)
	assert.Equal(t, 300.0, input.OrdinaryDividends)
	require.Len(t, input.CapitalGainsTransactions, 1)
	require.Len(t, input.Dependents, 1)
	require.NotNil(t, input.ItemizedDeductions)
	assert.Equal(t, 9000.0, input.ItemizedDeductions.MortgageInterest)
	assert.Equal(t, 1000.0, input.AdditionalIncome)
	assert.Equal(t, 500.0, input.TaxPayments)
	assert.Equal(t, "NJ", input.ResidentState)
}

func TestAssembleInputWithoutItemized(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusSingle, "")
	require.NoError(t, err)

	input, err := svc.AssembleInput(ctx, ret)
	require.NoError(t, err)
	assert.Nil(t, input.ItemizedDeductions)
	assert.Empty(t, input.W2s)
}

func TestCalculateEndToEnd(t *testing.T) {
	svc, w2s, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusSingle, "NY")
	require.NoError(t, err)
	require.NoError(t, w2s.Save(ctx, &postgres.W2Record{ID: "w1", ReturnID: ret.ID, Employer: "Acme", Wages: 50000, FederalTaxWithheld: 6000}))

	result, err := svc.Calculate(ctx, "user-1", ret.ID, "")
	require.NoError(t, err)

	assert.Equal(t, 2025, result.TaxYear)
	assert.Equal(t, 5250.0, domain.LineValue(result.Lines, "1040", "16"))
	assert.Equal(t, 750.0, result.Refund)
	require.NotNil(t, result.StateResult)
	assert.Equal(t, "NY", result.StateResult.State)
}

func TestCalculateStateOverride(t *testing.T) {
	svc, w2s, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusSingle, "NY")
	require.NoError(t, err)
	require.NoError(t, w2s.Save(ctx, &postgres.W2Record{ID: "w1", ReturnID: ret.ID, Employer: "Acme", Wages: 50000}))

	result, err := svc.Calculate(ctx, "user-1", ret.ID, "PA")
	require.NoError(t, err)
	require.NotNil(t, result.StateResult)
	assert.Equal(t, "PA", result.StateResult.State)
}

func TestCalculateAuthorization(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2025, domain.FilingStatusSingle, "")
	require.NoError(t, err)

	_, err = svc.Calculate(ctx, "intruder", ret.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCalculateUnsupportedYear(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	ret, err := svc.Create(ctx, "user-1", 2030, domain.FilingStatusSingle, "")
	require.NoError(t, err)

	_, err = svc.Calculate(ctx, "user-1", ret.ID, "")
	assert.Error(t, err)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, []byte("test-secret-0123456789"), time.Hour, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jane@Example.com ", "hunter2hunter2", "Jane", "Filer")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = svc.Register(ctx, "jane@example.com", "hunter2hunter2", "Jane", "Filer")
	assert.ErrorIs(t, err, ErrEmailTaken)

	token, loggedIn, err := svc.Login(ctx, "jane@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRejectsBadInput(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, []byte("test-secret-0123456789"), time.Hour, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "hunter2hunter2", "", "")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "ok@example.com", "short", "", "")
	assert.Error(t, err)
}
