package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ersonp/mens/internal/domain/entities"
)

const mergeID = "0b9a7c1e-3f1d-4c55-9a59-3a3d2f0c5b11"

func TestCompareLineages(t *testing.T) {
	tests := []struct {
		name   string
		local  []string
		remote []string
		want   Comparison
	}{
		{name: "identical", local: []string{"v1", "v2"}, remote: []string{"v1", "v2"}, want: Identical},
		{name: "local extends remote", local: []string{"v1", "v2"}, remote: []string{"v1"}, want: LocalIsNew},
		{name: "remote extends local", local: []string{"v1"}, remote: []string{"v1", "v2"}, want: RemoteIsNew},
		{name: "same length different tip", local: []string{"v1", "v2a"}, remote: []string{"v1", "v2b"}, want: Diverged},
		{name: "longer local without common prefix", local: []string{"a", "b", "c"}, remote: []string{"x"}, want: Diverged},
		{name: "longer remote without common prefix", local: []string{"x"}, remote: []string{"a", "b"}, want: Diverged},
		{name: "disjoint single versions", local: []string{"a"}, remote: []string{"b"}, want: Diverged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareLineages(tt.local, tt.remote))
		})
	}
}

func TestComparison_String(t *testing.T) {
	assert.Equal(t, "identical", Identical.String())
	assert.Equal(t, "local-is-new", LocalIsNew.String())
	assert.Equal(t, "remote-is-new", RemoteIsNew.String())
	assert.Equal(t, "diverged", Diverged.String())
	assert.Equal(t, "unknown", Comparison(42).String())
}

func TestMerger_Merge(t *testing.T) {
	tests := []struct {
		name   string
		local  entities.Note
		remote entities.Note
		want   Comparison
		expect entities.Note
	}{
		{
			name:   "identical lineages leave local untouched",
			local:  testNote(mergeID, "same", "v2", "v1"),
			remote: testNote(mergeID, "same", "v2", "v1"),
			want:   Identical,
			expect: testNote(mergeID, "same", "v2", "v1"),
		},
		{
			name:   "local ahead wins without change",
			local:  testNote(mergeID, "newer", "v3", "v1", "v2"),
			remote: testNote(mergeID, "older", "v2", "v1"),
			want:   LocalIsNew,
			expect: testNote(mergeID, "newer", "v3", "v1", "v2"),
		},
		{
			name:   "remote ahead is adopted",
			local:  testNote(mergeID, "old", "v1"),
			remote: testNote(mergeID, "new", "v2", "v1"),
			want:   RemoteIsNew,
			expect: entities.Note{
				ID:      mergeID,
				Content: "new",
				CTime:   testEpoch - 1000,
				MTime:   testEpoch,
				Version: "v2",
				History: []string{"v1"},
			},
		},
		{
			name:   "divergence concatenates and splices history",
			local:  testNote(mergeID, "local edit", "v2a", "v1"),
			remote: testNote(mergeID, "remote edit", "v2b", "v1"),
			want:   Diverged,
			expect: entities.Note{
				ID:      mergeID,
				Content: "local edit" + ConflictSeparator + "remote edit",
				CTime:   testEpoch - 1000,
				MTime:   testEpoch,
				Version: "v1",
				History: []string{"v1", "v2a", "v2b"},
			},
		},
		{
			name:   "divergence keeps remote order for remote-only versions",
			local:  testNote(mergeID, "L", "c", "a"),
			remote: testNote(mergeID, "R", "e", "a", "d", "c"),
			want:   Diverged,
			expect: entities.Note{
				ID:      mergeID,
				Content: "L" + ConflictSeparator + "R",
				CTime:   testEpoch - 1000,
				MTime:   testEpoch,
				Version: "v1",
				History: []string{"a", "c", "d", "e"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merger := NewMerger(newTestVersioner())
			local := tt.local.Clone()

			got := merger.Merge(&local, tt.remote)

			assert.Equal(t, tt.want, got)
			if diff := cmp.Diff(tt.expect, local); diff != "" {
				t.Errorf("merged note mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerger_Merge_DoesNotAliasRemoteHistory(t *testing.T) {
	merger := NewMerger(newTestVersioner())
	local := testNote(mergeID, "old", "v1")
	remote := testNote(mergeID, "new", "v2", "v1")

	merger.Merge(&local, remote)
	local.History[0] = "changed"

	assert.Equal(t, "v1", remote.History[0])
}

func TestMerger_Merge_DivergedHistoryLength(t *testing.T) {
	merger := NewMerger(newTestVersioner())
	local := testNote(mergeID, "a", "v2a", "v1")
	remote := testNote(mergeID, "b", "v2b", "v1")

	merger.Merge(&local, remote)

	assert.Len(t, local.History, 3)
	assert.Contains(t, local.Content, "a")
	assert.Contains(t, local.Content, "b")
	assert.Contains(t, local.Content, "===============================")
	assert.NotContains(t, local.History, local.Version)
}
