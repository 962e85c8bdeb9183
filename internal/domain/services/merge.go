package services

import (
	"slices"

	"github.com/ersonp/mens/internal/domain/entities"
)

// ConflictSeparator is placed between local and remote content when a note
// diverged on both sides.
const ConflictSeparator = "\n↑local\n===============================\n↓remote\n"

// Comparison classifies how a local lineage relates to a remote one.
type Comparison int

const (
	// Identical lineages need no change.
	Identical Comparison = iota
	// LocalIsNew means local extends remote.
	LocalIsNew
	// RemoteIsNew means remote extends local.
	RemoteIsNew
	// Diverged means neither lineage is a prefix of the other.
	Diverged
)

func (c Comparison) String() string {
	switch c {
	case Identical:
		return "identical"
	case LocalIsNew:
		return "local-is-new"
	case RemoteIsNew:
		return "remote-is-new"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// CompareLineages classifies two lineages. The checks run in a fixed order:
// identical, local ahead, remote ahead, diverged.
func CompareLineages(local, remote []string) Comparison {
	switch {
	case slices.Equal(local, remote):
		return Identical
	case len(local) > len(remote) && slices.Equal(local[:len(remote)], remote):
		return LocalIsNew
	case len(remote) > len(local) && slices.Equal(remote[:len(local)], local):
		return RemoteIsNew
	default:
		return Diverged
	}
}

// Merger reconciles a local note with its remote counterpart.
type Merger struct {
	versioner *Versioner
}

// NewMerger creates a Merger that versions reconciled notes with versioner.
func NewMerger(versioner *Versioner) *Merger {
	return &Merger{versioner: versioner}
}

// Merge folds remote into local in place and reports the classification.
// id and cTime of local are never touched.
func (m *Merger) Merge(local *entities.Note, remote entities.Note) Comparison {
	localLineage := local.Lineage()
	remoteLineage := remote.Lineage()

	comparison := CompareLineages(localLineage, remoteLineage)
	switch comparison {
	case Identical, LocalIsNew:
		return comparison
	case RemoteIsNew:
		local.Content = remote.Content
		local.History = slices.Clone(remote.History)
		if local.History == nil {
			local.History = []string{}
		}
		local.Version = remote.Version
		local.MTime = m.versioner.Now()
		return comparison
	}

	local.Content = local.Content + ConflictSeparator + remote.Content
	local.History = append(localLineage, divergedPart(localLineage, remoteLineage)...)
	local.Version = m.versioner.NextVersion()
	local.MTime = m.versioner.Now()
	return comparison
}

// divergedPart returns the remote ids missing from local, in remote order.
func divergedPart(local, remote []string) []string {
	seen := make(map[string]struct{}, len(local))
	for _, v := range local {
		seen[v] = struct{}{}
	}
	var part []string
	for _, v := range remote {
		if _, ok := seen[v]; !ok {
			part = append(part, v)
		}
	}
	return part
}
