package source

// FileFlags encodes metadata about a query file.
type FileFlags uint8

const (
	// FileVirtual indicates the file was added from memory (test, stdin, --query).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one query text together with where it came from.
type File struct {
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
	lineIdx []uint32
}
