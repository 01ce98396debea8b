package accounts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modprof/internal/accounts"
)

// writeAccount creates an account dir with an account.dat under the mlc act
// tree. lines are raw account.dat lines.
func writeAccount(t *testing.T, mlc, persistentID string, lines string) {
	t.Helper()
	dir := filepath.Join(mlc, "usr", "save", "system", "act", persistentID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "account.dat"), []byte(lines), 0644))
}

// "Link" as hex-encoded UTF-16BE with zero padding.
const miiNameLink = "004c0069006e006b000000000000000000000000"

func TestList(t *testing.T) {
	t.Run("decodes mii name", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000001", "PersistentId=80000001\nMiiName="+miiNameLink+"\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "80000001", accts[0].PersistentID)
		assert.Equal(t, "Link", accts[0].MiiName)
	})

	t.Run("falls back to account id", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000002", "AccountId=zelda99\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "zelda99", accts[0].MiiName)
	})

	t.Run("falls back to persistent id", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000003", "Uuid=abc\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "80000003", accts[0].MiiName)
	})

	t.Run("undecodable mii name falls back", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000004", "MiiName=nothex\nAccountId=link_bw\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "link_bw", accts[0].MiiName)
	})

	t.Run("tolerates spaces around separator", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000005", "AccountId = spaced\r\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "spaced", accts[0].MiiName)
	})

	t.Run("skips non-account directories", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000001", "AccountId=real\n")

		// "common" is not a persistent id; a dir without account.dat is
		// not an account either.
		actDir := filepath.Join(mlc, "usr", "save", "system", "act")
		require.NoError(t, os.MkdirAll(filepath.Join(actDir, "common"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(actDir, "80000009"), 0755))

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 1)
		assert.Equal(t, "80000001", accts[0].PersistentID)
	})

	t.Run("missing act dir yields empty list", func(t *testing.T) {
		accts, err := accounts.List(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, accts)
	})

	t.Run("sorted by persistent id", func(t *testing.T) {
		mlc := t.TempDir()
		writeAccount(t, mlc, "80000002", "AccountId=second\n")
		writeAccount(t, mlc, "80000001", "AccountId=first\n")

		accts, err := accounts.List(mlc)
		require.NoError(t, err)
		require.Len(t, accts, 2)
		assert.Equal(t, "80000001", accts[0].PersistentID)
		assert.Equal(t, "80000002", accts[1].PersistentID)
	})
}

func TestLabel(t *testing.T) {
	a := accounts.Account{PersistentID: "80000001", MiiName: "Link"}
	assert.Equal(t, "Link (80000001)", a.Label())
}
