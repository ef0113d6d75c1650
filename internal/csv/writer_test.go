package csv

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

func TestWriter_WriteAccounts(t *testing.T) {
	t.Parallel()

	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name      string
		snapshots []core.Snapshot
		expected  string
	}{
		{
			name:      "no_accounts",
			snapshots: nil,
			expected:  "client,available,held,total,locked\n",
		},
		{
			name: "sorted_by_client",
			snapshots: []core.Snapshot{
				{Client: 3, Available: dec("0"), Held: dec("2"), Total: dec("2"), Locked: true},
				{Client: 1, Available: dec("1.5"), Held: dec("0"), Total: dec("1.5"), Locked: false},
				{Client: 2, Available: dec("0.0001"), Held: dec("0"), Total: dec("0.0001"), Locked: false},
			},
			expected: "client,available,held,total,locked\n" +
				"1,1.5000,0.0000,1.5000,false\n" +
				"2,0.0001,0.0000,0.0001,false\n" +
				"3,0.0000,2.0000,2.0000,true\n",
		},
		{
			name: "negative_available_rendered",
			snapshots: []core.Snapshot{
				{Client: 9, Available: dec("-3.25"), Held: dec("3.25"), Total: dec("0"), Locked: false},
			},
			expected: "client,available,held,total,locked\n" +
				"9,-3.2500,3.2500,0.0000,false\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, NewWriter(&buf).WriteAccounts(tt.snapshots))
			require.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	snapshots := []core.Snapshot{
		{Client: 2, Available: decimal.New(2, 0), Held: decimal.Zero, Total: decimal.New(2, 0)},
		{Client: 1, Available: decimal.New(1, 0), Held: decimal.Zero, Total: decimal.New(1, 0)},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(snapshots))

	require.Equal(t, core.ClientID(2), snapshots[0].Client)
	require.Equal(t, core.ClientID(1), snapshots[1].Client)
}
