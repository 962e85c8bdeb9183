package a

import "context"

type Note struct{ ID string }

type LocalStore interface {
	Add(ctx context.Context, note *Note) (*Note, error)
	ReplaceAll(ctx context.Context, notes []Note) error
}

type Remote interface {
	ReplaceAllFiles(ctx context.Context, token, resourceID string, files map[string]string) error
}

type set map[string]bool

func (s set) Add(id string) { s[id] = true }

func bad(ctx context.Context, notes []Note, store LocalStore, remote Remote) {
	for i := range notes {
		store.Add(ctx, &notes[i]) // want "Add called inside loop - use ReplaceAll instead"
	}
	for _, n := range notes {
		remote.ReplaceAllFiles(ctx, "", "r", map[string]string{n.ID: ""}) // want "ReplaceAllFiles called inside loop - use a single ReplaceAllFiles instead"
	}
}

func good(ctx context.Context, notes []Note, store LocalStore) {
	seen := set{}
	for _, n := range notes {
		// No context, not an I/O call.
		seen.Add(n.ID)
	}
	_ = store.ReplaceAll(ctx, notes)

	var later []func()
	for i := range notes {
		later = append(later, func() { store.Add(ctx, &notes[i]) })
	}
	_ = later
}
