package integrity_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/integrity"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/business/core/receipt"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/dataset"
	"github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/foundation/ethereum"
	"github.com/stretchr/testify/require"
)

const salesCSV = "product,units,price\nlaptop,5,999.5\nmonitor,12,150\nkeyboard,30,45\n"
const textCSV = "product,region\nlaptop,north\nmonitor,south\n"

// stubAnchorer implements integrity.Anchorer against an in-memory map.
type stubAnchorer struct {
	mu       sync.Mutex
	stored   map[string]string
	account  common.Address
	balance  *big.Int
	getErr   error
	storeErr error
}

func newStubAnchorer() *stubAnchorer {
	return &stubAnchorer{
		stored:  make(map[string]string),
		account: common.HexToAddress("0x531130464929826c57BBBF989e44085a02eeB120"),
		balance: big.NewInt(1500000000000000000),
	}
}

func (s *stubAnchorer) StoreHash(ctx context.Context, name string, digest string) (ethereum.Receipt, error) {
	if s.storeErr != nil {
		return ethereum.Receipt{}, s.storeErr
	}

	s.mu.Lock()
	s.stored[name] = digest
	s.mu.Unlock()

	return ethereum.Receipt{
		TxHash:      "0xabc123",
		BlockNumber: 9244871,
		GasUsed:     47213,
		Success:     true,
	}, nil
}

func (s *stubAnchorer) GetHash(ctx context.Context, name string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored[name], nil
}

func (s *stubAnchorer) Balance(ctx context.Context) (*big.Int, error) {
	return s.balance, nil
}

func (s *stubAnchorer) Account() common.Address {
	return s.account
}

// stubReceipts implements integrity.ReceiptStore on a slice.
type stubReceipts struct {
	mu      sync.Mutex
	created []receipt.Receipt
}

func (s *stubReceipts) Create(ctx context.Context, rcpt *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rcpt.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *rcpt)
	return nil
}

func (s *stubReceipts) ByDataset(ctx context.Context, dataset string) ([]receipt.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []receipt.Receipt
	for _, rcpt := range s.created {
		if rcpt.Dataset == dataset {
			out = append(out, rcpt)
		}
	}
	return out, nil
}

func testCore(t *testing.T, anchorer *stubAnchorer, store *stubReceipts) *integrity.Core {
	t.Helper()

	core, err := integrity.New(integrity.Config{
		Anchorer: anchorer,
		Receipts: store,
	})
	require.NoError(t, err)
	t.Cleanup(core.Shutdown)

	return core
}

func TestUpsertDataset(t *testing.T) {
	core := testCore(t, newStubAnchorer(), &stubReceipts{})

	info, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)
	require.Equal(t, "sales_data", info.Name)
	require.Equal(t, 3, info.Rows)
	require.Equal(t, 3, info.Columns)
	require.Len(t, info.Digest, 64)

	// Same bytes again reuses the registered dataset.
	again, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)
	require.Equal(t, info.Digest, again.Digest)
	require.Equal(t, info.UploadedAt, again.UploadedAt)
	require.Len(t, core.Datasets(), 1)

	// Different bytes replace the dataset and change the digest.
	replaced, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV+"mouse,50,25\n"))
	require.NoError(t, err)
	require.NotEqual(t, info.Digest, replaced.Digest)
	require.Equal(t, 4, replaced.Rows)
	require.Len(t, core.Datasets(), 1)
}

func TestUpsertDatasetEmpty(t *testing.T) {
	core := testCore(t, newStubAnchorer(), &stubReceipts{})

	_, err := core.UpsertDataset("empty", strings.NewReader("product,units\n"))
	require.ErrorIs(t, err, integrity.ErrEmptyTable)
}

func TestAnchorVerifyFlow(t *testing.T) {
	anchorer := newStubAnchorer()
	store := &stubReceipts{}
	core := testCore(t, anchorer, store)
	ctx := context.Background()

	info, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)

	// Nothing anchored yet, the empty on-chain value is a mismatch.
	vr, err := core.Verify(ctx, "sales_data")
	require.NoError(t, err)
	require.False(t, vr.Verified)
	require.Empty(t, vr.OnChainDigest)
	require.Equal(t, info.Digest, vr.LocalDigest)

	// EDA is gated on verification.
	_, err = core.EDA(ctx, "sales_data")
	require.ErrorIs(t, err, integrity.ErrNotVerified)

	rcpt, err := core.Anchor(ctx, "sales_data")
	require.NoError(t, err)
	require.Equal(t, info.Digest, rcpt.Digest)
	require.Equal(t, "success", rcpt.Status)
	require.Equal(t, "0xabc123", rcpt.TxHash)
	require.Len(t, store.created, 1)

	// Anchoring invalidated the cached empty value.
	vr, err = core.Verify(ctx, "sales_data")
	require.NoError(t, err)
	require.True(t, vr.Verified)
	require.Equal(t, info.Digest, vr.OnChainDigest)

	report, err := core.EDA(ctx, "sales_data")
	require.NoError(t, err)
	require.Equal(t, 3, report.Rows)
	require.Len(t, report.Numeric, 2)

	receipts, err := core.Receipts(ctx, "sales_data")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestTamper(t *testing.T) {
	anchorer := newStubAnchorer()
	core := testCore(t, anchorer, &stubReceipts{})
	ctx := context.Background()

	info, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)

	_, err = core.Anchor(ctx, "sales_data")
	require.NoError(t, err)

	tr, err := core.Tamper(ctx, "sales_data")
	require.NoError(t, err)
	require.False(t, tr.Verified)
	require.NotEqual(t, info.Digest, tr.TamperedDigest)
	require.Equal(t, info.Digest, tr.OnChainDigest)

	// The registered dataset is untouched and still verifies.
	vr, err := core.Verify(ctx, "sales_data")
	require.NoError(t, err)
	require.True(t, vr.Verified)
}

func TestTamperNoNumericColumn(t *testing.T) {
	core := testCore(t, newStubAnchorer(), &stubReceipts{})

	_, err := core.UpsertDataset("notes", strings.NewReader(textCSV))
	require.NoError(t, err)

	_, err = core.Tamper(context.Background(), "notes")
	require.ErrorIs(t, err, dataset.ErrNoNumericColumn)
}

func TestVerifyRPCFailure(t *testing.T) {
	anchorer := newStubAnchorer()
	anchorer.getErr = errors.New("connection refused")
	core := testCore(t, anchorer, &stubReceipts{})

	_, err := core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)

	_, err = core.Verify(context.Background(), "sales_data")
	require.Error(t, err)
	require.NotErrorIs(t, err, integrity.ErrNotFound)
}

func TestUnknownDataset(t *testing.T) {
	core := testCore(t, newStubAnchorer(), &stubReceipts{})
	ctx := context.Background()

	_, err := core.Dataset("missing")
	require.ErrorIs(t, err, integrity.ErrNotFound)

	_, err = core.Verify(ctx, "missing")
	require.ErrorIs(t, err, integrity.ErrNotFound)

	_, err = core.Anchor(ctx, "missing")
	require.ErrorIs(t, err, integrity.ErrNotFound)

	_, err = core.Preview("missing", 5)
	require.ErrorIs(t, err, integrity.ErrNotFound)
}

func TestWalletStatus(t *testing.T) {
	anchorer := newStubAnchorer()
	core := testCore(t, anchorer, &stubReceipts{})

	status, err := core.WalletStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, anchorer.account.Hex(), status.Account)
	require.Equal(t, "1500000000000000000", status.BalanceWei)
	require.Equal(t, "1.500000", status.BalanceETH)
}

func TestEvents(t *testing.T) {
	var mu sync.Mutex
	var events []string

	anchorer := newStubAnchorer()
	core, err := integrity.New(integrity.Config{
		Anchorer: anchorer,
		Receipts: &stubReceipts{},
		EvHandler: func(v string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, v)
		},
	})
	require.NoError(t, err)
	t.Cleanup(core.Shutdown)

	_, err = core.UpsertDataset("sales_data", strings.NewReader(salesCSV))
	require.NoError(t, err)

	_, err = core.Anchor(context.Background(), "sales_data")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	require.Contains(t, events[0], "upload:")
}
