package typedisk

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Typed paths and hardened file operations"
	MsgWriteShort      = "Atomically write stdin to a file"
	MsgReadShort       = "Print a file's content"
	MsgCopyShort       = "Copy a file, keeping its last write time"
	MsgCopyDirShort    = "Copy a directory tree"
	MsgRmShort         = "Delete a directory, retrying while files are locked"
	MsgEmptyShort      = "Remove everything inside a directory"
	MsgUniqueShort     = "Find (or create) an unused file name"
	MsgDigestShort     = "Print a file's content digest"
	MsgLsShort         = "List files or directories"
	MsgRelShort        = "Express a path relative to a root directory"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWritten      = "wrote %s\n"
	MsgCopied       = "copied %s -> %s\n"
	MsgCopiedDir    = "copied %d file(s) into %s\n"
	MsgDeleted      = "deleted %s\n"
	MsgEmptied      = "emptied %s\n"
	MsgNoEntries    = "No entries found."
	MsgVersionLine  = "typedisk %s (commit %s, built %s)\n"
	MsgDigestLine   = "%s  %s\n"
	MsgUniqueLine   = "%s\n"
	MsgRelativeLine = "%s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrCurrentDir   = "failed to resolve current directory: %w"
	MsgErrReadStdin    = "failed to read input: %w"
	MsgErrUnknownFmt   = "unknown output format %q (want text or yaml)"
	MsgErrNoCommand    = "no command specified"
	MsgErrInvalidDelay = "--timeout must not be negative"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Read configuration from this TOML file"
	MsgFlagReadOnly    = "Mark the written file read-only"
	MsgFlagForce       = "Clear read-only attributes before deleting"
	MsgFlagTimeout     = "Give up retrying after this long (0 waits indefinitely)"
	MsgFlagPreserveVCS = "Keep the version-control directory (disk.preserve_dir)"
	MsgFlagCreate      = "Create the file so the name is reserved"
	MsgFlagAlgo        = "Digest algorithm"
	MsgFlagPattern     = "Only list names matching this glob"
	MsgFlagRecursive   = "Descend into subdirectories"
	MsgFlagDirs        = "List directories instead of files"
	MsgFlagFormat      = "Output format: text or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rm-long.txt
	msgRmLongRaw string
	MsgRmLong    = strings.TrimSpace(msgRmLongRaw)

	//go:embed msgs/write-example.txt
	msgWriteExampleRaw string
	MsgWriteExample    = strings.TrimRight(msgWriteExampleRaw, "\n")

	//go:embed msgs/ls-example.txt
	msgLsExampleRaw string
	MsgLsExample    = strings.TrimRight(msgLsExampleRaw, "\n")
)
