package transaction_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpov/budgetd/internal/transaction"
)

func tx(id string) transaction.Transaction {
	return transaction.Transaction{
		ID:       id,
		Date:     "2025-01-15",
		Amount:   100,
		Category: "Продукты",
		Type:     transaction.TypeExpense,
	}
}

func TestMerge_Cardinality(t *testing.T) {
	existing := []transaction.Transaction{tx("a"), tx("b"), tx("c")}
	incoming := []transaction.Transaction{tx("a"), tx("d"), tx("e")}

	merged := transaction.Merge(existing, incoming)

	assert.Len(t, merged, len(existing)+len(incoming))

	// Every existing id survives unchanged, after the incoming block.
	assert.Equal(t, "a", merged[3].ID)
	assert.Equal(t, "b", merged[4].ID)
	assert.Equal(t, "c", merged[5].ID)
}

func TestMerge_CollisionRenaming(t *testing.T) {
	existing := []transaction.Transaction{tx("same")}
	incoming := []transaction.Transaction{tx("same")}

	merged := transaction.Merge(existing, incoming)
	require.Len(t, merged, 2)

	renamed := regexp.MustCompile(`^same_import_\d+$`)

	var plain, suffixed int

	for _, m := range merged {
		switch {
		case m.ID == "same":
			plain++
		case renamed.MatchString(m.ID):
			suffixed++
		}
	}

	assert.Equal(t, 1, plain)
	assert.Equal(t, 1, suffixed)
}

func TestMerge_DuplicateIncomingIDs(t *testing.T) {
	incoming := []transaction.Transaction{tx("x"), tx("x"), tx("x")}

	merged := transaction.Merge(nil, incoming)
	require.Len(t, merged, 3)

	seen := make(map[string]struct{})
	for _, m := range merged {
		_, dup := seen[m.ID]
		assert.False(t, dup, "duplicate id %q in merge output", m.ID)
		seen[m.ID] = struct{}{}
	}

	assert.Equal(t, "x", merged[0].ID)
	assert.Equal(t, "x_import_1", merged[1].ID)
	assert.Equal(t, "x_import_2", merged[2].ID)
}

func TestMerge_SuffixProbesPastTakenSuffixes(t *testing.T) {
	// The deterministic suffix itself can collide with a pre-existing id;
	// the counter keeps probing until the id is free.
	existing := []transaction.Transaction{tx("x"), tx("x_import_1")}
	incoming := []transaction.Transaction{tx("x")}

	merged := transaction.Merge(existing, incoming)
	require.Len(t, merged, 3)
	assert.Equal(t, "x_import_2", merged[0].ID)
}

func TestMerge_EmptySides(t *testing.T) {
	existing := []transaction.Transaction{tx("a")}

	assert.Equal(t, existing, transaction.Merge(existing, nil))
	assert.Equal(t, existing, transaction.Merge(nil, existing))
	assert.Empty(t, transaction.Merge(nil, nil))
}

func TestMerge_LargeSetKeepsEveryRecord(t *testing.T) {
	var existing, incoming []transaction.Transaction

	for i := range 50 {
		existing = append(existing, tx(fmt.Sprintf("id_%d", i)))
		incoming = append(incoming, tx(fmt.Sprintf("id_%d", i)))
	}

	merged := transaction.Merge(existing, incoming)
	assert.Len(t, merged, 100)

	ids := make(map[string]struct{}, 100)
	for _, m := range merged {
		ids[m.ID] = struct{}{}
	}

	assert.Len(t, ids, 100)
}
