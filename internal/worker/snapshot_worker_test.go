package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spendboard/internal/amqp"
	"spendboard/internal/core"
	"spendboard/internal/store/memory"
)

func testRecord(payer string, cents int64) core.ExpenseRecord {
	return core.ExpenseRecord{
		Payer:  payer,
		Amount: core.Money{Cents: cents},
		Date:   core.NewDate(2025, 6, 1),
		Method: core.Cash,
	}
}

func TestHandleExpenseRecordedRebuildsFromStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	for _, rec := range []core.ExpenseRecord{
		testRecord("Sam", 10000),
		testRecord("Ana", 20000),
	} {
		_, err := st.Append(ctx, rec)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	w := NewSnapshotWorker(st, path, 10, nil)

	msg := amqp.NewExpenseRecordedMessage("mem:1", testRecord("Ana", 20000))
	require.NoError(t, w.HandleExpenseRecorded(ctx, msg))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// All store records land in the sheet, not just the one in the message.
	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header plus both records")

	top, err := f.GetCellValue("Top Spenders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", top)
}

func TestRebuildSnapshotStoreFailure(t *testing.T) {
	st := memory.New()
	st.FailLoad = assert.AnError

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	w := NewSnapshotWorker(st, path, 10, nil)

	err := w.RebuildSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file written on load failure")
}

func TestStartupSnapshotEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	w := NewSnapshotWorker(memory.New(), path, 10, nil)
	require.NoError(t, w.StartupSnapshot(context.Background()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
