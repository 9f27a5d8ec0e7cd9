package dotstore

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Track dotfiles in a git-backed store and symlink them home"
	MsgRootLong = `dotstore keeps your dotfiles in a git-backed store directory and
materializes them into your home directory as symlinks. Git handles
versioning, history and syncing between machines; dotstore handles the
symlinks.`

	// Flag descriptions
	MsgFlagInit      = "Initialize: clone the store from the given remote URL"
	MsgFlagDirectory = "Directory to clone the store into (with --init)"
	MsgFlagSync      = "Pull the latest store state and repair symlinks"
	MsgFlagAdd       = "Start tracking the given file or directory"
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	// Status messages
	MsgStoreInitialized = "Store initialized at %s (%d entries linked)"
	MsgStoreSynced      = "Store synced (%d entries linked)"
	MsgPathAdded        = "Now tracking %s (committed as %s)"
	MsgLinkedItem       = "  %s -> %s\n"
)
