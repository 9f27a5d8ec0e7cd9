package types

// Entry is a top-level tracked entry in the store, identified by its
// name relative to the store root.
type Entry struct {
	// Name is the entry name relative to the store root, e.g. ".bashrc"
	Name string

	// IsDir reports whether the entry is a directory (one symlink covers
	// the whole subtree)
	IsDir bool
}

// LinkedEntry records one symlink materialized into the home directory
type LinkedEntry struct {
	// Entry is the tracked entry the link mirrors
	Entry Entry

	// LinkPath is the absolute home-directory path of the symlink
	LinkPath string

	// StorePath is the absolute path of the entry inside the store
	StorePath string

	// Created reports whether the symlink was created or replaced by this
	// run (false means it was already correct)
	Created bool
}

// InitResult is the outcome of initializing a store
type InitResult struct {
	StoreRoot string
	RemoteURL string
	Linked    []LinkedEntry
}

// SyncResult is the outcome of syncing a store with its remote
type SyncResult struct {
	StoreRoot string
	Linked    []LinkedEntry
}

// AddResult is the outcome of adding a path to the store
type AddResult struct {
	// SourcePath is the original (expanded) path that was adopted
	SourcePath string

	// StorePath is the absolute path of the copy inside the store
	StorePath string

	// RelPath is the entry path relative to the store root
	RelPath string

	// IsDir reports whether a whole directory tree was adopted
	IsDir bool
}
