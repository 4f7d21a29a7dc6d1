package types

// FileInfo describes a project file as tracked for change detection: a
// project-relative, normalized path and the stat-derived timestamp/size
// pair used to decide whether the file differs from what is in the pack.
type FileInfo struct {
	Path      string
	TimeStamp uint64
	FileSize  uint64
}

// Equal reports whether two FileInfos refer to the same path with the same
// timestamp and size, the equality spec.md §3 defines for change detection.
func (f FileInfo) Equal(other FileInfo) bool {
	return f.Path == other.Path && f.TimeStamp == other.TimeStamp && f.FileSize == other.FileSize
}

// Less orders FileInfo by Path alone, the total order spec.md §3 mandates.
func (f FileInfo) Less(other FileInfo) bool {
	return f.Path < other.Path
}
